package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/autocrawl/internal/engine"
	"github.com/law-makers/autocrawl/pkg/models"
)

// Selectors on a listing's detail page
const (
	SelOptionsSection  = "div.card__options-section"
	SelOptionsCategory = "h4.card__options-category"
	SelOptionsItem     = "li.card__options-item"
)

// Options fills m from the options sections of a detail page. Each section's
// heading becomes the key and its items, comma-joined, the value. Headings
// outside the known categories are added as extra keys.
func Options(body []byte, m models.OptionMap) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return engine.NewError(engine.ErrCodeParse, "failed to parse HTML", err)
	}

	var parseErr error
	doc.Find(SelOptionsSection).EachWithBreak(func(_ int, section *goquery.Selection) bool {
		heading := section.Find(SelOptionsCategory).First()
		if heading.Length() == 0 {
			parseErr = engine.NewParseError(SelOptionsCategory)
			return false
		}

		var items []string
		section.Find(SelOptionsItem).Each(func(_ int, li *goquery.Selection) {
			items = append(items, strings.TrimSpace(li.Text()))
		})

		m[strings.TrimSpace(heading.Text())] = strings.Join(items, ",")
		return true
	})

	return parseErr
}
