package proxy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// failCooldown is how long a failed proxy is skipped
const failCooldown = 5 * time.Minute

// Pool manages a list of proxies with rotation and failure tracking
type Pool struct {
	proxies []*url.URL
	index   int
	mu      sync.Mutex
	failed  map[string]time.Time
}

// NewPool parses the proxy URLs and returns a rotating pool
func NewPool(proxies []string) (*Pool, error) {
	p := &Pool{failed: make(map[string]time.Time)}
	for _, raw := range proxies {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q", raw)
		}
		p.proxies = append(p.proxies, u)
	}
	return p, nil
}

// Len returns the number of configured proxies
func (p *Pool) Len() int {
	return len(p.proxies)
}

// Next returns the next healthy proxy from the pool, or nil when the pool is empty
func (p *Pool) Next() *url.URL {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return nil
	}

	start := p.index
	for {
		proxy := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[proxy.Host]; ok {
			if time.Since(failTime) < failCooldown {
				if p.index == start {
					// Every proxy failed recently; use this one anyway
					return proxy
				}
				continue
			}
			delete(p.failed, proxy.Host)
		}

		return proxy
	}
}

type ctxKey struct{}

// WithProxy pins proxy for requests made with the returned context
func WithProxy(ctx context.Context, proxy *url.URL) context.Context {
	return context.WithValue(ctx, ctxKey{}, proxy)
}

// FromContext returns the proxy pinned by WithProxy, if any
func FromContext(ctx context.Context) *url.URL {
	u, _ := ctx.Value(ctxKey{}).(*url.URL)
	return u
}

// ProxyFunc adapts the pool for use as http.Transport.Proxy. A proxy pinned on
// the request context wins so callers can report failures against it.
func (p *Pool) ProxyFunc() func(*http.Request) (*url.URL, error) {
	return func(req *http.Request) (*url.URL, error) {
		if u := FromContext(req.Context()); u != nil {
			return u, nil
		}
		return p.Next(), nil
	}
}

// MarkFailed marks a proxy as failed so it will be skipped for a while
func (p *Pool) MarkFailed(proxy *url.URL) {
	if proxy == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy.Host] = time.Now()
}

// MarkHealthy clears the failure status of a proxy
func (p *Pool) MarkHealthy(proxy *url.URL) {
	if proxy == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy.Host)
}
