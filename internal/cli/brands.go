// internal/cli/brands.go
package cli

import (
	"fmt"
	"time"

	"github.com/law-makers/autocrawl/internal/ui"
	"github.com/spf13/cobra"
)

// brandsCmd represents the brands command
var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List the configured brands and the effective minimum year",
	Example: `  # Show the built-in brand table
  autocrawl brands

  # Show the table from a config file
  autocrawl brands --config autocrawl.yaml`,
	Args: cobra.NoArgs,
	RunE: runBrands,
}

func init() {
	rootCmd.AddCommand(brandsCmd)
}

func runBrands(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	w := cmd.OutOrStdout()
	cfg := a.Config

	fmt.Fprintf(w, "\n%s (%d)\n", ui.Bold("Brands"), len(cfg.Brands))
	for i, b := range cfg.Brands {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, ui.White(b.Label), ui.Dim(fmt.Sprintf("(id %d)", b.ID)))
	}
	fmt.Fprintf(w, "\n%s\n", ui.Field("Minimum year", cfg.EffectiveMinYear(time.Now())))
	fmt.Fprintf(w, "%s\n\n", ui.Field("Search URL", cfg.SearchURL()))
	return nil
}
