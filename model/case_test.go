package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaseFromRow(t *testing.T) {
	header := []string{"id", "engine", "name", "url", "assert_title_contains"}

	tests := []struct {
		name   string
		header []string
		row    []any
		want   TestCase
		wantOK bool
	}{
		{
			name:   "full row",
			header: header,
			row:    []any{"t1", "chromedp", "Example", "https://example.com", "Example"},
			want: TestCase{
				ID: "t1", Engine: "chromedp", Name: "Example",
				URL: "https://example.com", AssertTitleContains: "Example",
			},
			wantOK: true,
		},
		{
			name:   "fields are trimmed",
			header: header,
			row:    []any{"  t1 ", " chromedp", "Example ", " https://example.com ", " Example"},
			want: TestCase{
				ID: "t1", Engine: "chromedp", Name: "Example",
				URL: "https://example.com", AssertTitleContains: "Example",
			},
			wantOK: true,
		},
		{
			name:   "header matching ignores case and whitespace",
			header: []string{"ID ", " Engine", "Name", "URL", "Assert_Title_Contains"},
			row:    []any{"t2", "chromedp", "n", "u", "needle"},
			want: TestCase{
				ID: "t2", Engine: "chromedp", Name: "n",
				URL: "u", AssertTitleContains: "needle",
			},
			wantOK: true,
		},
		{
			name:   "short row defaults missing trailing columns to empty",
			header: header,
			row:    []any{"t3"},
			want:   TestCase{ID: "t3"},
			wantOK: true,
		},
		{
			name:   "non-string cells are coerced",
			header: header,
			row:    []any{42, "chromedp", nil, "https://example.com", ""},
			want: TestCase{
				ID: "42", Engine: "chromedp", URL: "https://example.com",
			},
			wantOK: true,
		},
		{
			name:   "empty id is rejected",
			header: header,
			row:    []any{"", "chromedp", "n", "u", ""},
			wantOK: false,
		},
		{
			name:   "whitespace-only id is rejected",
			header: header,
			row:    []any{"   ", "chromedp", "n", "u", ""},
			wantOK: false,
		},
		{
			name:   "extra columns are ignored",
			header: []string{"id", "owner", "engine"},
			row:    []any{"t4", "somebody", "chromedp"},
			want:   TestCase{ID: "t4", Engine: "chromedp"},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CaseFromRow(tt.header, tt.row)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCasesFromRows_PreservesOrderAndDropsRejected(t *testing.T) {
	header := []string{"id", "engine"}
	rows := [][]any{
		{"a", "chromedp"},
		{"", "chromedp"},
		{"b"},
		{"c", "other"},
	}

	cases := CasesFromRows(header, rows)
	require.Len(t, cases, 3)
	require.Equal(t, "a", cases[0].ID)
	require.Equal(t, "b", cases[1].ID)
	require.Equal(t, "", cases[1].Engine)
	require.Equal(t, "c", cases[2].ID)
}
