package model

import (
	"fmt"
	"strings"
)

// TestCase represents a single smoke test definition: navigate to a URL and
// assert that the page title contains a substring.
type TestCase struct {
	// Unique ID within a run; rows without one are dropped at load time
	ID string `json:"id"`
	// Engine identifies the page driver used to execute the case
	Engine string `json:"engine"`
	// Human-readable display name (may be empty)
	Name string `json:"name"`
	// URL to navigate to; not validated here, a bad URL yields an error result
	URL string `json:"url"`
	// Substring the page title must contain; empty matches any title
	AssertTitleContains string `json:"assert_title_contains"`
}

// Recognized column names, after canonicalization.
const (
	colID                  = "id"
	colEngine              = "engine"
	colName                = "name"
	colURL                 = "url"
	colAssertTitleContains = "assert_title_contains"
)

// canonicalHeader lowercases a header cell and strips all whitespace, so
// "ID " and "Assert_Title_Contains" resolve to their canonical columns.
func canonicalHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), ""))
}

// CaseFromRow resolves one data row against a header row into a TestCase.
// Header matching is case- and whitespace-insensitive, rows shorter than the
// header resolve missing cells to "", non-string cells are coerced via
// string conversion, and every field is trimmed. The second return value is
// false when the resolved id is empty: such rows are dropped, not reported.
func CaseFromRow(header []string, row []any) (TestCase, bool) {
	fields := map[string]string{}
	for i, h := range header {
		key := canonicalHeader(h)
		switch key {
		case colID, colEngine, colName, colURL, colAssertTitleContains:
		default:
			continue // extra columns ignored
		}
		var cell string
		if i < len(row) {
			switch v := row[i].(type) {
			case string:
				cell = v
			case nil:
				cell = ""
			default:
				cell = fmt.Sprint(v)
			}
		}
		fields[key] = strings.TrimSpace(cell)
	}

	c := TestCase{
		ID:                  fields[colID],
		Engine:              fields[colEngine],
		Name:                fields[colName],
		URL:                 fields[colURL],
		AssertTitleContains: fields[colAssertTitleContains],
	}
	if c.ID == "" {
		return TestCase{}, false
	}
	return c, true
}

// CasesFromRows applies CaseFromRow over a block of data rows, preserving
// source row order for accepted rows.
func CasesFromRows(header []string, rows [][]any) []TestCase {
	cases := make([]TestCase, 0, len(rows))
	for _, row := range rows {
		if c, ok := CaseFromRow(header, row); ok {
			cases = append(cases, c)
		}
	}
	return cases
}
