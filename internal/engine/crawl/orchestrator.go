// internal/engine/crawl/orchestrator.go
package crawl

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/law-makers/autocrawl/internal/reqctx"
	"github.com/law-makers/autocrawl/pkg/models"
)

// DefaultPattern names a brand's output file. %s is replaced by the brand label.
const DefaultPattern = "cars %s.csv"

// BrandCrawler crawls one brand to completion
type BrandCrawler interface {
	Crawl(ctx context.Context, job models.BrandJob) (*models.CrawlResult, error)
}

// RecordWriter persists a brand's finalized records
type RecordWriter interface {
	Write(path string, records []models.ListingRecord) error
}

// JobResult reports the outcome of one brand job
type JobResult struct {
	Job        models.BrandJob
	Path       string
	Records    int
	Pages      int
	StopReason models.StopReason
	Err        error
	Duration   time.Duration
}

// OrchestratorOptions configures an Orchestrator
type OrchestratorOptions struct {
	// BrandWorkers bounds concurrently running brands. 0 runs all at once.
	BrandWorkers int
	OutputDir    string
	Pattern      string
	RunID        string
}

// Orchestrator runs a crawl per brand and writes each finished brand's file
type Orchestrator struct {
	crawler BrandCrawler
	writer  RecordWriter
	opts    OrchestratorOptions
}

// NewOrchestrator creates an Orchestrator
func NewOrchestrator(c BrandCrawler, w RecordWriter, opts OrchestratorOptions) *Orchestrator {
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if opts.RunID == "" {
		opts.RunID = reqctx.NewRunID()
	}
	return &Orchestrator{crawler: c, writer: w, opts: opts}
}

// OutputPath returns the file a brand's records are written to
func (o *Orchestrator) OutputPath(label string) string {
	return filepath.Join(o.opts.OutputDir, strings.ReplaceAll(o.opts.Pattern, "%s", label))
}

// Run crawls every job and waits for all of them. A failing job does not
// stop its siblings. Results are returned in job order.
func (o *Orchestrator) Run(ctx context.Context, jobs []models.BrandJob) []JobResult {
	results := make([]JobResult, len(jobs))

	workers := o.opts.BrandWorkers
	if workers <= 0 || workers > len(jobs) {
		workers = len(jobs)
	}
	sem := make(chan struct{}, max(workers, 1))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job models.BrandJob) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = JobResult{Job: job, Err: reqctx.NewJobError(reqctx.WithJob(ctx, o.opts.RunID, job.Label), ctx.Err())}
				return
			}

			results[i] = o.runJob(ctx, job)
		}(i, job)
	}
	wg.Wait()

	return results
}

func (o *Orchestrator) runJob(ctx context.Context, job models.BrandJob) JobResult {
	ctx = reqctx.WithJob(ctx, o.opts.RunID, job.Label)
	logger := reqctx.Logger(ctx)
	start := time.Now()

	res := JobResult{Job: job}

	logger.Info().Int("brand_id", job.BrandID).Int("min_year", job.MinYear).Msg("Starting brand crawl")

	result, err := o.crawler.Crawl(ctx, job)
	if err != nil {
		logger.Error().Err(err).Msg("Brand crawl aborted, no output written")
		res.Err = reqctx.NewJobError(ctx, err)
		res.Duration = time.Since(start)
		return res
	}

	res.Records = len(result.Records)
	res.Pages = result.Pages
	res.StopReason = result.StopReason

	path := o.OutputPath(job.Label)
	if err := o.writer.Write(path, result.Records); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to write output")
		res.Err = reqctx.NewJobError(ctx, err)
		res.Duration = time.Since(start)
		return res
	}
	res.Path = path
	res.Duration = time.Since(start)

	logger.Info().Str("path", path).Int("records", res.Records).Msg("Output written")
	return res
}
