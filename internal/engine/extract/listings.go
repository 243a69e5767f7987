// Package extract turns listing-site HTML into models.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/autocrawl/internal/engine"
	urlutil "github.com/law-makers/autocrawl/internal/utils/url"
	"github.com/law-makers/autocrawl/pkg/models"
	"golang.org/x/net/html"
)

// Selectors on the search results page
const (
	SelListing  = "div.listing-item"
	SelPrice    = ".listing-item__price"
	SelPriceUSD = ".listing-item__priceusd"
	SelLink     = "a.listing-item__link"
	SelParams   = ".listing-item__params"
	SelTitle    = "h3.listing-item__title"
	SelLocation = ".listing-item__location"
)

// Listings parses a search results page into partial listings, one per
// listing container, in document order. A page without containers yields an
// empty slice. A container missing any expected element is a parse error.
func Listings(body []byte, host string) ([]models.PartialListing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, engine.NewError(engine.ErrCodeParse, "failed to parse HTML", err)
	}

	items := doc.Find(SelListing)
	listings := make([]models.PartialListing, 0, items.Length())

	var parseErr error
	items.EachWithBreak(func(i int, item *goquery.Selection) bool {
		l, err := listing(item, host)
		if err != nil {
			parseErr = fmt.Errorf("listing %d: %w", i, err)
			return false
		}
		listings = append(listings, l)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return listings, nil
}

func listing(item *goquery.Selection, host string) (models.PartialListing, error) {
	var l models.PartialListing

	priceText, err := requireText(item, SelPrice)
	if err != nil {
		return l, err
	}
	if l.Price, err = Digits(priceText); err != nil {
		return l, err
	}

	usdText, err := requireText(item, SelPriceUSD)
	if err != nil {
		return l, err
	}
	if l.PriceUSD, err = Digits(usdText); err != nil {
		return l, err
	}

	href, _ := item.Find(SelLink).First().Attr("href")
	if href = strings.TrimSpace(href); href == "" {
		return l, engine.NewParseError(SelLink + "[href]")
	}
	l.Link = urlutil.ResolveURL(host, href)

	params := item.Find(SelParams).First()
	if params.Length() == 0 {
		return l, engine.NewParseError(SelParams)
	}
	if l.Year, err = Digits(firstChildText(params.Nodes[0])); err != nil {
		return l, err
	}

	if l.Title, err = requireText(item, SelTitle); err != nil {
		return l, err
	}
	if l.City, err = requireText(item, SelLocation); err != nil {
		return l, err
	}

	return l, nil
}

// requireText returns the trimmed text of the first match of selector
func requireText(item *goquery.Selection, selector string) (string, error) {
	sel := item.Find(selector).First()
	if sel.Length() == 0 {
		return "", engine.NewParseError(selector)
	}
	return strings.TrimSpace(sel.Text()), nil
}

// firstChildText returns the text of n's first child that is not blank
// whitespace. The year is the leading cell of the params block.
func firstChildText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				return t
			}
		case html.ElementNode:
			return strings.TrimSpace(goquery.NewDocumentFromNode(c).Text())
		}
	}
	return ""
}
