package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/smokerun/smokerun/model"
)

// CSVSource loads cases from a local CSV file whose first record is the
// header row.
type CSVSource struct {
	path string
}

// NewCSVSource builds a CSV file source.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// LoadCases reads and normalizes the CSV file.
func (s *CSVSource) LoadCases(ctx context.Context) ([]model.TestCase, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may be shorter than the header
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrFormat, s.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ErrFormat, s.path)
	}

	rows := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, cell := range rec {
			row[i] = cell
		}
		rows = append(rows, row)
	}

	return model.CasesFromRows(records[0], rows), nil
}
