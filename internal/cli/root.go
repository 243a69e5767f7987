// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/law-makers/autocrawl/internal/app"
	"github.com/law-makers/autocrawl/internal/config"
	"github.com/law-makers/autocrawl/internal/ui"
)

// shutdownTimeout bounds Application.Close after a command finishes
const shutdownTimeout = 10 * time.Second

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "autocrawl",
	Short:   "Crawl car listings from cars.av.by into per-brand files",
	Long:    `Autocrawl walks the paginated search results for each configured brand, enriches every listing with the equipment options from its detail page and writes one delimited file per brand.`,
	Version: "0.1.0",

	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with ctx. Cancelling ctx stops any crawl in
// progress; brands that did not finish write no file.
func Execute(ctx context.Context) error {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if a := GetAppFromCmd(cmd); a != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = a.Close(closeCtx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error("Error:"), err)
	}
	return err
}

func init() {
	// Initialize the application lazily so -h and --version stay cheap
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetAppFromCmd(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		SetApp(cmd, a)
		return nil
	}
}

func init() {
	// Register centralized flags
	config.RegisterFlags(rootCmd)

	// Customize help and version flag descriptions
	rootCmd.Flags().BoolP("help", "h", false, "Help for Autocrawl")
	rootCmd.Flags().Bool("version", false, "Version for Autocrawl")
}
