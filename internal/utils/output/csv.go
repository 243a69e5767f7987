package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/law-makers/autocrawl/pkg/models"
)

// DefaultDelimiter separates fields in the brand files
const DefaultDelimiter = ';'

// Fixed leading columns of a brand file
const (
	ColTitle    = "Марка"
	ColLink     = "Ссылка"
	ColPrice    = "Цена (BYN)"
	ColPriceUSD = "Цена (USD)"
	ColCity     = "Город"
	ColYear     = "Год"
)

// DefaultHeader returns the six listing columns followed by the option categories
func DefaultHeader() []string {
	header := []string{ColTitle, ColLink, ColPrice, ColPriceUSD, ColCity, ColYear}
	return append(header, models.KnownCategories()...)
}

// Row projects a record onto the columns of DefaultHeader
func Row(r models.ListingRecord) []string {
	row := []string{
		r.Title,
		r.Link,
		strconv.Itoa(r.Price),
		strconv.Itoa(r.PriceUSD),
		r.City,
		strconv.Itoa(r.Year),
	}
	options := r.Options
	if options == nil {
		options = models.NewOptionMap()
	}
	return append(row, options.Known()...)
}

// DelimitedWriter writes records as delimiter-separated text with a header row
type DelimitedWriter struct {
	Delimiter rune
	Header    []string
}

// NewDelimitedWriter creates a writer with the default header
func NewDelimitedWriter(delimiter rune) *DelimitedWriter {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &DelimitedWriter{Delimiter: delimiter, Header: DefaultHeader()}
}

// Write replaces the file at path with the header and one row per record.
// Parent directories are created as needed.
func (w *DelimitedWriter) Write(path string, records []models.ListingRecord) error {
	content, err := w.Encode(records)
	if err != nil {
		return err
	}
	return writeFile(path, content)
}

// Encode renders records without touching the filesystem
func (w *DelimitedWriter) Encode(records []models.ListingRecord) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = w.Delimiter

	header := w.Header
	if header == nil {
		header = DefaultHeader()
	}
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return nil, fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return os.WriteFile(path, content, 0644)
}
