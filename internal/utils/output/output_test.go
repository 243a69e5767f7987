package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/law-makers/autocrawl/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.ListingRecord {
	options := models.NewOptionMap()
	options[models.CategoryComfort] = "Круиз-контроль,Парктроник"
	options["Прочее"] = "not emitted"

	return []models.ListingRecord{
		{
			PartialListing: models.PartialListing{
				Title: "BMW X5 G05", Link: "https://cars.av.by/bmw/x5/1",
				Price: 250000, PriceUSD: 78000, City: "Минск", Year: 2023,
			},
			Options: options,
		},
		{
			PartialListing: models.PartialListing{
				Title: "BMW 3; Touring", Link: "https://cars.av.by/bmw/3/2",
				Price: 90000, PriceUSD: 28000, City: "Брест", Year: 2024,
			},
			Options: models.NewOptionMap(),
		},
	}
}

func TestDelimitedWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cars bmw.csv")
	w := NewDelimitedWriter(';')

	require.NoError(t, w.Write(path, sampleRecords()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Len(t, row, 15)
	}
	assert.Equal(t, DefaultHeader(), rows[0])
	assert.Equal(t, "Марка", rows[0][0])
	assert.Equal(t, models.CategoryExterior, rows[0][6])

	assert.Equal(t, []string{"BMW X5 G05", "https://cars.av.by/bmw/x5/1", "250000", "78000", "Минск", "2023"}, rows[1][:6])
	assert.Equal(t, "Круиз-контроль,Парктроник", rows[1][6+5])
	assert.Equal(t, "BMW 3; Touring", rows[2][0])
}

func TestDelimitedWriter_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars audi.csv")

	require.NoError(t, NewDelimitedWriter(0).Write(path, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimRight(content, "\n"), []byte("\n"))
	assert.Len(t, lines, 1)
	assert.Equal(t, 14, bytes.Count(lines[0], []byte(";")))
}

func TestDelimitedWriter_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars volvo.csv")
	w := NewDelimitedWriter(';')

	require.NoError(t, w.Write(path, sampleRecords()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, w.Write(path, sampleRecords()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDelimitedWriter_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the header\n\n\n"), 0644))

	require.NoError(t, NewDelimitedWriter(',').Write(path, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale")
}

func TestRow_NilOptions(t *testing.T) {
	row := Row(models.ListingRecord{PartialListing: models.PartialListing{Title: "x"}})
	assert.Len(t, row, 15)
	assert.Equal(t, "0", row[2])
}

func TestJSONWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.json")

	require.NoError(t, JSONWriter{}.Write(path, sampleRecords()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []models.ListingRecord
	require.NoError(t, json.Unmarshal(content, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "BMW X5 G05", got[0].Title)
	assert.Equal(t, "Круиз-контроль,Парктроник", got[0].Options[models.CategoryComfort])
}
