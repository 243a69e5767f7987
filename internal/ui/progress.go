package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Progress renders a spinner counting enriched listings across all brands.
// It is safe for concurrent use.
type Progress struct {
	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	total int
	done  bool
}

// NewProgress creates a progress spinner writing to w. A nil w discards output.
func NewProgress(w io.Writer) *Progress {
	if w == nil {
		w = io.Discard
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Crawling"),
		progressbar.OptionSetItsString("listings"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar}
}

// PageDone records that an index page for brand was crawled
func (p *Progress) PageDone(brand string, page, _ int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Describe(fmt.Sprintf("Crawling %s (page %d)", brand, page))
}

// ListingDone counts one enriched listing
func (p *Progress) ListingDone(string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total++
	_ = p.bar.Add(1)
}

// Total returns the number of listings counted so far
func (p *Progress) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Finish clears the spinner. Later calls are no-ops.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.done = true
	_ = p.bar.Finish()
}
