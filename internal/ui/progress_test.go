package ui

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_CountsListings(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.ListingDone("audi")
		}()
	}
	wg.Wait()
	p.PageDone("audi", 1, 10)
	p.Finish()

	assert.Equal(t, 10, p.Total())
}

func TestProgress_NilWriter(t *testing.T) {
	p := NewProgress(nil)
	p.ListingDone("bmw")
	p.Finish()
	assert.Equal(t, 1, p.Total())
}
