package output

import (
	"encoding/json"

	"github.com/law-makers/autocrawl/pkg/models"
)

// JSONWriter writes records as an indented JSON array
type JSONWriter struct{}

// Write replaces the file at path with the JSON encoding of records
func (JSONWriter) Write(path string, records []models.ListingRecord) error {
	if records == nil {
		records = []models.ListingRecord{}
	}
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, append(content, '\n'))
}
