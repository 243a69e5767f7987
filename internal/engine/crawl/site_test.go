package crawl

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/law-makers/autocrawl/internal/engine/static"
	"github.com/law-makers/autocrawl/internal/retry"
)

// detailResponse is what the fake site serves for one detail page
type detailResponse struct {
	status int
	body   string
	delay  time.Duration
}

// fakeSite serves filtered index pages per brand id and detail pages by path
type fakeSite struct {
	mu      sync.Mutex
	pages   map[int][]string // brand id -> index page bodies
	status  map[int]int      // brand id -> status for every index page
	details map[string]detailResponse
	queries []string

	detailHits atomic.Int32
	server     *httptest.Server
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()
	s := &fakeSite{
		pages:   map[int][]string{},
		status:  map[int]int{},
		details: map[string]detailResponse{},
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

func (s *fakeSite) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/filter" {
		q := r.URL.Query()
		s.mu.Lock()
		s.queries = append(s.queries, q.Encode())
		s.mu.Unlock()

		brand, _ := strconv.Atoi(q.Get("brands[0][brand]"))
		page := 1
		if p := q.Get("page"); p != "" {
			page, _ = strconv.Atoi(p)
		}

		if code, ok := s.status[brand]; ok {
			w.WriteHeader(code)
			return
		}
		pages := s.pages[brand]
		if page > len(pages) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(pages[page-1]))
		return
	}

	s.detailHits.Add(1)
	d, ok := s.details[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	if d.status != 0 {
		w.WriteHeader(d.status)
	}
	w.Write([]byte(d.body))
}

func (s *fakeSite) fetcher() *static.Fetcher {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = 1
	return static.New(&http.Client{Timeout: 5 * time.Second}, static.Options{Retry: cfg})
}

func (s *fakeSite) crawlOptions() Options {
	return Options{
		SearchURL:     s.server.URL + "/filter",
		Host:          s.server.URL,
		DetailWorkers: 1,
	}
}

func (s *fakeSite) recordedQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// indexPage renders a results page with one container per detail path
func indexPage(paths ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"listings\">")
	for i, p := range paths {
		fmt.Fprintf(&b, `<div class="listing-item">
	<h3 class="listing-item__title">Car %[1]d</h3>
	<a class="listing-item__link" href="%[2]s">Car %[1]d</a>
	<div class="listing-item__params"><div>2023 г.</div><div>бензин</div></div>
	<div class="listing-item__price">%[3]d р.</div>
	<div class="listing-item__priceusd">≈ $%[4]d</div>
	<div class="listing-item__location">Минск</div>
</div>`, i+1, p, 10000+i, 3000+i)
	}
	b.WriteString("</div></body></html>")
	return b.String()
}

// detailPage renders an options block with the given category -> items
func detailPage(sections ...[2]string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, s := range sections {
		fmt.Fprintf(&b, `<div class="card__options-section"><h4 class="card__options-category">%s</h4><ul>`, s[0])
		for _, item := range strings.Split(s[1], ",") {
			fmt.Fprintf(&b, `<li class="card__options-item">%s</li>`, item)
		}
		b.WriteString("</ul></div>")
	}
	b.WriteString("</body></html>")
	return b.String()
}
