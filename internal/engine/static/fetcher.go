// internal/engine/static/fetcher.go
package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/law-makers/autocrawl/internal/engine"
	"github.com/law-makers/autocrawl/internal/proxy"
	"github.com/law-makers/autocrawl/internal/retry"
	"github.com/law-makers/autocrawl/pkg/models"
	"github.com/rs/zerolog/log"
)

// DefaultUserAgent is a desktop Chrome string; the listing site serves
// degraded pages to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/103.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 16 << 20

// Options configures a Fetcher
type Options struct {
	UserAgent string
	Headers   map[string]string
	Retry     retry.Config
	Proxies   *proxy.Pool
}

// Fetcher implements engine.PageFetcher with plain HTTP GETs.
// It is safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
	retry     retry.Config
	proxies   *proxy.Pool
}

// New creates a Fetcher around a shared client
func New(client *http.Client, opts Options) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Fetcher{
		client:    client,
		userAgent: ua,
		headers:   opts.Headers,
		retry:     opts.Retry,
		proxies:   opts.Proxies,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "StaticFetcher"
}

// Fetch retrieves rawURL with params merged into its query
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, params url.Values) (*models.Page, error) {
	target, err := buildURL(rawURL, params)
	if err != nil {
		return nil, engine.NewError(engine.ErrCodeParse, "invalid URL", err).WithDetail("url", rawURL)
	}

	page, err := retry.Do(ctx, f.retry, func(ctx context.Context) (*models.Page, error) {
		p, err := f.fetchOnce(ctx, target)
		if err != nil {
			return nil, err
		}
		if f.retry.Retryable(p.StatusCode) {
			return p, &retry.StatusError{StatusCode: p.StatusCode, URL: target}
		}
		return p, nil
	})
	if err == nil {
		return page, nil
	}

	// A retryable status that never cleared is still just a status for the caller
	var sc retry.StatusCoder
	if page != nil && errors.As(err, &sc) {
		return page, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return nil, engine.NewTransportError(target, err)
}

func (f *Fetcher) fetchOnce(ctx context.Context, target string) (*models.Page, error) {
	start := time.Now()

	log.Debug().
		Str("url", target).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	var pinned *url.URL
	if f.proxies != nil && f.proxies.Len() > 0 {
		pinned = f.proxies.Next()
		ctx = proxy.WithProxy(ctx, pinned)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "*/*")
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if pinned != nil {
			f.proxies.MarkFailed(pinned)
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()
	if pinned != nil {
		f.proxies.MarkHealthy(pinned)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	page := &models.Page{
		URL:          target,
		StatusCode:   resp.StatusCode,
		Body:         body,
		ResponseTime: time.Since(start),
	}

	log.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("response_time", page.ResponseTime).
		Int("bytes", len(body)).
		Msg("Fetch completed")

	return page, nil
}

// buildURL merges params into rawURL's existing query
func buildURL(rawURL string, params url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if len(params) == 0 {
		return u.String(), nil
	}
	q := u.Query()
	for key, values := range params {
		q.Del(key)
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
