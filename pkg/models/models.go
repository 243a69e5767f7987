package models

import "time"

// Page is the raw result of a single GET against the listing site
type Page struct {
	URL          string
	StatusCode   int
	Body         []byte
	ResponseTime time.Duration
}

// PartialListing holds the fields visible on a search results page
type PartialListing struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Price    int    `json:"price"`
	PriceUSD int    `json:"price_usd"`
	City     string `json:"city"`
	Year     int    `json:"year"`
}

// ListingRecord is a listing enriched with the options from its detail page
type ListingRecord struct {
	PartialListing
	Options OptionMap `json:"options"`
}

// BrandJob is one configured crawl target
type BrandJob struct {
	Label   string `json:"label" yaml:"label"`
	BrandID int    `json:"brand_id" yaml:"id"`
	MinYear int    `json:"min_year" yaml:"min_year"`
}

// StopReason explains why a crawl loop reached its terminal state
type StopReason string

const (
	StopStatus    StopReason = "status"
	StopEmpty     StopReason = "empty"
	StopPageLimit StopReason = "page_limit"
	StopTransport StopReason = "transport"
)

// CrawlResult is the ordered, finalized output of one brand crawl
type CrawlResult struct {
	Job        BrandJob
	Records    []ListingRecord
	Pages      int
	StopReason StopReason
}
