// internal/cli/help.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/law-makers/autocrawl/internal/ui"
	"github.com/spf13/cobra"
)

// minFlagWidth is the narrowest flag column in help output
const minFlagWidth = 28

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetUsageFunc(customUsageFunc)
}

// customHelpFunc prints colorized help to the command's stdout
func customHelpFunc(cmd *cobra.Command, _ []string) {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "\n%s\n", ui.ColorBold+ui.ColorCyan+strings.ToUpper(cmd.Name())+ui.ColorReset)
	if cmd.Short != "" {
		fmt.Fprintln(w, cmd.Short)
	}
	if cmd.Long != "" && cmd.Long != cmd.Short {
		fmt.Fprintf(w, "\n%s\n", wrapText(cmd.Long, 80))
	}

	printUsage(w, cmd)

	if cmd.HasExample() {
		fmt.Fprintf(w, "\n%s\n", ui.Heading("Examples"))
		printExamples(w, cmd.Example)
	}

	printCommands(w, cmd)

	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintf(w, "\n%s\n", ui.Heading("Flags"))
		printFlags(w, cmd.LocalFlags().FlagUsages())
	}
	if cmd.HasAvailableInheritedFlags() {
		fmt.Fprintf(w, "\n%s\n", ui.Heading("Global Flags"))
		printFlags(w, cmd.InheritedFlags().FlagUsages())
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "\n%s\n", ui.Dim(fmt.Sprintf("Use \"%s <command> --help\" for more information about a command.", cmd.CommandPath())))
	}
	fmt.Fprintln(w)
}

// customUsageFunc prints a short colorized usage to stderr
func customUsageFunc(cmd *cobra.Command) error {
	w := cmd.ErrOrStderr()

	printUsage(w, cmd)
	printCommands(w, cmd)
	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintf(w, "\n%s\n", ui.Heading("Flags"))
		printFlags(w, cmd.LocalFlags().FlagUsages())
	}
	fmt.Fprintf(w, "\n%s\n", ui.Dim(fmt.Sprintf("Use \"%s --help\" for more information.", cmd.CommandPath())))
	return nil
}

func printUsage(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintf(w, "\n%s\n", ui.Heading("Usage"))
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", ui.Cyan(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s %s %s\n", ui.Cyan(cmd.CommandPath()), ui.Yellow("<command>"), ui.Dim("[flags]"))
	}
}

// printExamples renders comment lines dimmed and commands with a prompt
func printExamples(w io.Writer, example string) {
	afterCommand := false
	for _, line := range strings.Split(example, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			if afterCommand {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %s\n", ui.Dim(line))
			afterCommand = false
		default:
			fmt.Fprintf(w, "  %s\n", ui.Green("$ "+line))
			afterCommand = true
		}
	}
}

func printCommands(w io.Writer, cmd *cobra.Command) {
	if !cmd.HasAvailableSubCommands() {
		return
	}

	var available []*cobra.Command
	width := 0
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.Name() == "help" {
			continue
		}
		available = append(available, c)
		width = max(width, len(c.Name()))
	}

	fmt.Fprintf(w, "\n%s\n", ui.Heading("Commands"))
	for _, c := range available {
		fmt.Fprintf(w, "  %s%s%s\n", ui.Cyan(c.Name()), strings.Repeat(" ", width-len(c.Name())+2), ui.Dim(c.Short))
	}
}

// printFlags aligns pflag's usage text into a flag column and a dimmed
// description column. Continuation lines are indented under the description.
func printFlags(w io.Writer, usages string) {
	lines := strings.Split(usages, "\n")

	width := minFlagWidth
	for _, line := range lines {
		if flag, _, ok := splitFlagLine(line); ok {
			width = max(width, len(flag))
		}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		flag, desc, ok := splitFlagLine(line)
		switch {
		case ok && desc != "":
			fmt.Fprintf(w, "  %s%s%s\n", ui.Green(flag), strings.Repeat(" ", width-len(flag)+2), ui.Dim(desc))
		case ok:
			fmt.Fprintf(w, "  %s\n", ui.Green(flag))
		default:
			fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", width+4), ui.Dim(strings.TrimSpace(line)))
		}
	}
}

// splitFlagLine splits one pflag usage line into its flag and description
func splitFlagLine(line string) (flag, desc string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(trimmed, "-") {
		return "", "", false
	}
	flag, desc, _ = strings.Cut(trimmed, "  ")
	return strings.TrimSpace(flag), strings.TrimSpace(desc), true
}

// wrapText wraps text at width, keeping paragraphs and list items intact
func wrapText(text string, width int) string {
	var paragraphs []string

	for _, para := range strings.Split(text, "\n\n") {
		var out []string
		for _, line := range strings.Split(para, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
				out = append(out, line)
				continue
			}

			var current strings.Builder
			for _, word := range strings.Fields(line) {
				if current.Len() > 0 && current.Len()+1+len(word) > width {
					out = append(out, current.String())
					current.Reset()
				}
				if current.Len() > 0 {
					current.WriteByte(' ')
				}
				current.WriteString(word)
			}
			if current.Len() > 0 {
				out = append(out, current.String())
			}
		}
		if len(out) > 0 {
			paragraphs = append(paragraphs, strings.Join(out, "\n"))
		}
	}

	return strings.Join(paragraphs, "\n\n")
}
