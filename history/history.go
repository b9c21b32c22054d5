// Package history persists run records as a single JSON array on disk,
// oldest first, append-only in normal operation.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/smokerun/smokerun/model"
)

// Store reads and writes the run history file. It assumes a single writer:
// runs are triggered sequentially, so the read-modify-write append is not
// guarded by a file lock.
type Store struct {
	logger zerolog.Logger
	path   string
}

// NewStore returns a store backed by the JSON file at path.
func NewStore(logger zerolog.Logger, path string) *Store {
	return &Store{logger: logger, path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// ReadAll returns the stored run records, oldest first. A missing,
// unreadable, non-list, or legacy-format file reads as an empty history;
// ReadAll never fails.
func (s *Store) ReadAll() []model.RunRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to read history file")
		}
		return nil
	}
	return s.decode(data)
}

// decode parses history file contents, discarding anything that is not a
// well-formed run record list. The legacy schema (a flat array of result
// objects, no run wrapper) is detected by sniffing the first element for
// "id" and "status" without "results", and treated as empty rather than
// upgraded: summaries for historical runs cannot be reconstructed.
func (s *Store) decode(data []byte) []model.RunRecord {
	var elems []map[string]json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("History file is not a JSON array, treating as empty")
		return nil
	}
	if len(elems) > 0 {
		first := elems[0]
		_, hasID := first["id"]
		_, hasStatus := first["status"]
		_, hasResults := first["results"]
		if hasID && hasStatus && !hasResults {
			s.logger.Warn().Str("path", s.path).Msg("Legacy flat-result history detected, starting fresh")
			return nil
		}
	}

	var records []model.RunRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to parse history records, treating as empty")
		return nil
	}
	return records
}

// AppendRun appends one record to the history file, creating the parent
// directory and initializing an empty list as needed. Legacy-format
// contents are discarded before the append.
func (s *Store) AppendRun(record model.RunRecord) error {
	records := s.ReadAll()
	records = append(records, record)
	return s.write(records)
}

// ReplaceAll overwrites the entire history. Used only by remote sync; the
// store must end up list-valued, so a nil slice is written as an empty
// list.
func (s *Store) ReplaceAll(records []model.RunRecord) error {
	if records == nil {
		records = []model.RunRecord{}
	}
	return s.write(records)
}

func (s *Store) write(records []model.RunRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	s.logger.Debug().Str("path", s.path).Int("records", len(records)).Msg("Wrote history")
	return nil
}
