// Package source loads test cases from external tabular sources: a Google
// Sheets range, a local CSV file, or a local YAML file. Every source
// applies the same normalization rules: headers match case- and
// whitespace-insensitively, fields are trimmed, and rows with an empty id
// are dropped silently.
package source

import (
	"context"
	"errors"

	"github.com/smokerun/smokerun/model"
)

// ErrUnavailable marks a source that cannot be reached or authenticated.
var ErrUnavailable = errors.New("case source unavailable")

// ErrFormat marks a source whose shape is wrong, e.g. a missing header row.
var ErrFormat = errors.New("case source format error")

// Source yields validated test cases. An empty source (headers but no data
// rows) returns an empty slice, not an error.
type Source interface {
	LoadCases(ctx context.Context) ([]model.TestCase, error)
}
