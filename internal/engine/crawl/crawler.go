// internal/engine/crawl/crawler.go
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/law-makers/autocrawl/internal/engine"
	"github.com/law-makers/autocrawl/internal/engine/extract"
	"github.com/law-makers/autocrawl/internal/reqctx"
	"github.com/law-makers/autocrawl/pkg/models"
)

// DefaultMaxPages bounds a brand crawl when the caller sets no limit
const DefaultMaxPages = 500

// Options configures a Crawler
type Options struct {
	// SearchURL is the absolute URL of the filtered search page
	SearchURL string
	// Host resolves relative listing links
	Host string
	// MaxPages stops the loop after this many index pages. 0 disables the cap.
	MaxPages int
	// DetailWorkers bounds concurrent detail fetches per page. 1 is sequential.
	DetailWorkers int
	Progress      engine.Progress
}

// Crawler walks the paginated search results for one brand
type Crawler struct {
	fetcher  engine.PageFetcher
	enricher *Enricher
	opts     Options
}

// NewCrawler creates a Crawler
func NewCrawler(f engine.PageFetcher, e *Enricher, opts Options) *Crawler {
	if opts.DetailWorkers < 1 {
		opts.DetailWorkers = 1
	}
	if opts.MaxPages < 0 {
		opts.MaxPages = 0
	}
	if opts.Progress == nil {
		opts.Progress = engine.NopProgress{}
	}
	return &Crawler{fetcher: f, enricher: e, opts: opts}
}

// JobQuery builds the search query for a job's page. The first page carries
// no page parameter.
func JobQuery(job models.BrandJob, page int) url.Values {
	q := url.Values{}
	q.Set("brands[0][brand]", strconv.Itoa(job.BrandID))
	q.Set("year[min]", strconv.Itoa(job.MinYear))
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

// Crawl fetches index pages from page 1 until the site stops returning
// listings, enriching each listing with its detail options. Records keep
// the order in which they appear on the index pages.
func (c *Crawler) Crawl(ctx context.Context, job models.BrandJob) (*models.CrawlResult, error) {
	logger := reqctx.Logger(ctx)
	start := time.Now()

	result := &models.CrawlResult{
		Job:     job,
		Records: []models.ListingRecord{},
	}

	for page := 1; ; page++ {
		if c.opts.MaxPages > 0 && page > c.opts.MaxPages {
			result.StopReason = models.StopPageLimit
			logger.Warn().Int("max_pages", c.opts.MaxPages).Msg("Page limit reached")
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.fetcher.Fetch(ctx, c.opts.SearchURL, JobQuery(job, page))
		if err != nil {
			if errors.Is(err, engine.ErrTransport) {
				logger.Warn().Err(err).Int("page", page).Msg("Index fetch failed, finishing brand")
				result.StopReason = models.StopTransport
				break
			}
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			logger.Debug().Int("page", page).Int("status", resp.StatusCode).Msg("Index page ended pagination")
			result.StopReason = models.StopStatus
			break
		}

		listings, err := extract.Listings(resp.Body, c.opts.Host)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(listings) == 0 {
			logger.Debug().Int("page", page).Msg("Index page has no listings")
			result.StopReason = models.StopEmpty
			break
		}

		records, err := c.enrich(ctx, job, listings)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		result.Records = append(result.Records, records...)
		result.Pages = page
		c.opts.Progress.PageDone(job.Label, page, len(records))

		logger.Info().
			Int("page", page).
			Int("listings", len(records)).
			Dur("response_time", resp.ResponseTime).
			Msg("Page crawled")
	}

	logger.Info().
		Int("pages", result.Pages).
		Int("records", len(result.Records)).
		Str("stop", string(result.StopReason)).
		Dur("duration", time.Since(start)).
		Msg("Brand crawl finished")

	return result, nil
}

// enrich fetches detail options for every listing, writing each result at
// the listing's own index.
func (c *Crawler) enrich(ctx context.Context, job models.BrandJob, listings []models.PartialListing) ([]models.ListingRecord, error) {
	records := make([]models.ListingRecord, len(listings))

	err := forEach(ctx, len(listings), c.opts.DetailWorkers, func(ctx context.Context, i int) error {
		options, err := c.enricher.Enrich(ctx, listings[i].Link)
		if err != nil {
			return fmt.Errorf("listing %d: %w", i, err)
		}
		records[i] = models.ListingRecord{PartialListing: listings[i], Options: options}
		c.opts.Progress.ListingDone(job.Label)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
