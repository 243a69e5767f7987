package engine

import (
	"context"
	"net/url"

	"github.com/law-makers/autocrawl/pkg/models"
)

// PageFetcher is the interface the crawl loop and enricher fetch pages through
type PageFetcher interface {
	// Fetch issues one GET for rawURL with params merged into its query.
	// Non-2xx responses are returned as pages, not errors.
	Fetch(ctx context.Context, rawURL string, params url.Values) (*models.Page, error)

	// Name returns the name of the fetcher implementation
	Name() string
}

// Progress receives crawl progress notifications. Implementations must be
// safe for concurrent use.
type Progress interface {
	PageDone(brand string, page, listings int)
	ListingDone(brand string)
}

// NopProgress discards progress notifications
type NopProgress struct{}

func (NopProgress) PageDone(string, int, int) {}
func (NopProgress) ListingDone(string)        {}
