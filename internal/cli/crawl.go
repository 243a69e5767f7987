// internal/cli/crawl.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/law-makers/autocrawl/internal/config"
	"github.com/law-makers/autocrawl/internal/engine/crawl"
	"github.com/law-makers/autocrawl/internal/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl [brand...]",
	Short: "Crawl listings for all or the named brands",
	Long: `Walks the search results page by page for each brand, starting at page 1,
and stops a brand when the site answers with a non-200 status or an empty page.

Every listing is enriched with the equipment options from its detail page.
A brand that hits a malformed page is aborted and writes no file; the other
brands carry on.`,
	Example: `  # Crawl every configured brand into the current directory
  autocrawl crawl

  # Crawl two brands into ./data with 8 detail workers
  autocrawl crawl audi volvo -o ./data --detail-workers 8

  # Include older cars and write comma-separated files
  autocrawl crawl bmw --min-year 2018 --delimiter ,

  # Use a brand table from a config file
  autocrawl crawl --config autocrawl.yaml`,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	config.RegisterCrawlFlags(crawlCmd)
}

// jobSummary is the JSON form of one brand's outcome
type jobSummary struct {
	Brand      string `json:"brand"`
	Path       string `json:"path,omitempty"`
	Records    int    `json:"records"`
	Pages      int    `json:"pages"`
	StopReason string `json:"stop_reason,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

func runCrawl(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	jobs, err := a.Config.Jobs(time.Now(), args)
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", a.RunID).
		Int("brands", len(jobs)).
		Int("min_year", a.Config.EffectiveMinYear(time.Now())).
		Msg("Starting crawl")

	start := time.Now()
	results := a.Orchestrator.Run(cmd.Context(), jobs)
	if a.Progress != nil {
		a.Progress.Finish()
	}

	if a.Config.JSONLog {
		err = printSummaryJSON(cmd.OutOrStdout(), results)
	} else {
		printSummary(cmd.OutOrStdout(), results, time.Since(start))
	}
	if err != nil {
		return err
	}

	if ctxErr := cmd.Context().Err(); ctxErr != nil {
		return fmt.Errorf("crawl interrupted: %w", ctxErr)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d brand(s) failed", failed, len(results))
	}
	return nil
}

func printSummaryJSON(w io.Writer, results []crawl.JobResult) error {
	summaries := make([]jobSummary, 0, len(results))
	for _, r := range results {
		s := jobSummary{
			Brand:      r.Job.Label,
			Path:       r.Path,
			Records:    r.Records,
			Pages:      r.Pages,
			StopReason: string(r.StopReason),
			DurationMs: r.Duration.Milliseconds(),
		}
		if r.Err != nil {
			s.Error = r.Err.Error()
		}
		summaries = append(summaries, s)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}

func printSummary(w io.Writer, results []crawl.JobResult, elapsed time.Duration) {
	success, failed, records := 0, 0, 0

	fmt.Fprintln(w, "\n"+ui.Bold("Crawl Results:"))
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for i, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%s [%d/%d] %s\n", ui.Error("✗"), i+1, len(results), ui.White(r.Job.Label))
			fmt.Fprintf(w, "  %s %s\n", ui.Dim("Error:"), ui.Error(r.Err.Error()))
			continue
		}
		success++
		records += r.Records
		fmt.Fprintf(w, "%s [%d/%d] %s\n", ui.Success("✓"), i+1, len(results), ui.White(r.Job.Label))
		fmt.Fprintf(w, "  %s %s  %s %d  %s %d  %s %s  %s %v\n",
			ui.Dim("File:"), ui.White(r.Path),
			ui.Dim("Listings:"), r.Records,
			ui.Dim("Pages:"), r.Pages,
			ui.Dim("Stop:"), r.StopReason,
			ui.Dim("Duration:"), r.Duration.Round(time.Millisecond))
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Summary:"))
	fmt.Fprintf(w, "  %s\n", ui.Field("Brands", len(results)))
	fmt.Fprintf(w, "  %s %s\n", ui.Bold("Success:"), ui.Success(fmt.Sprint(success)))
	fmt.Fprintf(w, "  %s %s\n", ui.Bold("Failed:"), ui.Error(fmt.Sprint(failed)))
	fmt.Fprintf(w, "  %s\n", ui.Field("Listings", records))
	fmt.Fprintf(w, "  %s\n", ui.Field("Elapsed", elapsed.Round(time.Millisecond)))
}
