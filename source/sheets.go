package source

import (
	"context"
	"fmt"
	"regexp"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/smokerun/smokerun/model"
)

// spreadsheetIDPattern matches the document id embedded in a full sheets
// URL. Conservative on purpose: anything unrecognized is used verbatim.
var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9\-_]+)`)

// ExtractSpreadsheetID accepts either a bare spreadsheet id or a full
// Google Sheets URL and returns the id.
func ExtractSpreadsheetID(s string) string {
	if m := spreadsheetIDPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// SheetsSource loads cases from a Google Sheets range using a service
// account credentials file with readonly scope.
type SheetsSource struct {
	spreadsheetID   string
	rangeSpec       string
	credentialsFile string
}

// NewSheetsSource builds a sheets source. sheetID may be a full sheets URL;
// the spreadsheet id is extracted from it.
func NewSheetsSource(sheetID, rangeSpec, credentialsFile string) *SheetsSource {
	return &SheetsSource{
		spreadsheetID:   ExtractSpreadsheetID(sheetID),
		rangeSpec:       rangeSpec,
		credentialsFile: credentialsFile,
	}
}

// LoadCases fetches the configured range and normalizes its rows. The first
// row is the header row; its absence is a format error.
func (s *SheetsSource) LoadCases(ctx context.Context) ([]model.TestCase, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(s.credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create sheets client: %v", ErrUnavailable, err)
	}

	resp, err := svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch range %q: %v", ErrUnavailable, s.rangeSpec, err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("%w: sheet range %q has no header row", ErrFormat, s.rangeSpec)
	}

	header := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		header = append(header, fmt.Sprint(cell))
	}

	return model.CasesFromRows(header, resp.Values[1:]), nil
}
