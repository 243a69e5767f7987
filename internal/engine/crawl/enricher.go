package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/law-makers/autocrawl/internal/cache"
	"github.com/law-makers/autocrawl/internal/engine"
	"github.com/law-makers/autocrawl/internal/engine/extract"
	"github.com/law-makers/autocrawl/internal/reqctx"
	"github.com/law-makers/autocrawl/pkg/models"
)

// Enricher scrapes the options categories from a listing's detail page
type Enricher struct {
	fetcher  engine.PageFetcher
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewEnricher creates an Enricher. c may be nil to disable caching.
func NewEnricher(f engine.PageFetcher, c cache.Cache, cacheTTL time.Duration) *Enricher {
	return &Enricher{fetcher: f, cache: c, cacheTTL: cacheTTL}
}

// Enrich returns the option map for the detail page at link. The map always
// holds every known category. A non-200 response or a transport failure
// yields the all-empty map; a malformed options block is returned as an error.
func (e *Enricher) Enrich(ctx context.Context, link string) (models.OptionMap, error) {
	logger := reqctx.Logger(ctx)
	options := models.NewOptionMap()

	if e.cache != nil {
		if cached, ok := e.cache.Get(link); ok {
			return cached, nil
		}
	}

	page, err := e.fetcher.Fetch(ctx, link, nil)
	if err != nil {
		if errors.Is(err, engine.ErrTransport) {
			logger.Warn().Err(err).Str("link", link).Msg("Detail fetch failed, leaving options empty")
			return options, nil
		}
		return nil, err
	}

	if page.StatusCode != http.StatusOK {
		logger.Warn().
			Int("status", page.StatusCode).
			Str("link", link).
			Msg("Detail page unavailable, leaving options empty")
		return options, nil
	}

	if err := extract.Options(page.Body, options); err != nil {
		return nil, fmt.Errorf("detail %s: %w", link, err)
	}

	if extra := options.Extra(); len(extra) > 0 {
		logger.Debug().Strs("categories", extra).Str("link", link).Msg("Unrecognized option categories")
	}

	if e.cache != nil {
		e.cache.Set(link, options, e.cacheTTL)
	}

	return options, nil
}
