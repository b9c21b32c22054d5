package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/smokerun/smokerun/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(zerolog.Nop(), filepath.Join(t.TempDir(), "history", "test_history.json"))
}

func sampleRecord(n int) model.RunRecord {
	results := make([]model.TestResult, n)
	for i := range results {
		results[i] = model.TestResult{
			ID:         "t1",
			Engine:     "chromedp",
			URL:        "https://example.com",
			Status:     model.StatusPass,
			StartedAt:  time.Now().UTC(),
			FinishedAt: time.Now().UTC(),
			Title:      model.StringPtr("Example Domain"),
		}
	}
	return model.NewRunRecord(results)
}

func TestReadAll_MissingFile(t *testing.T) {
	s := newTestStore(t)
	require.Empty(t, s.ReadAll())
}

func TestAppendRun_CreatesAndAppends(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AppendRun(sampleRecord(1)))
	require.NoError(t, s.AppendRun(sampleRecord(2)))

	runs := s.ReadAll()
	require.Len(t, runs, 2)
	require.Len(t, runs[0].Results, 1)
	require.Len(t, runs[1].Results, 2)
	for _, run := range runs {
		require.Equal(t, len(run.Results),
			run.Summary.Pass+run.Summary.Fail+run.Summary.Error)
	}
}

func TestAppendRun_PersistedFieldNames(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AppendRun(sampleRecord(1)))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	for _, field := range []string{
		`"executed_at"`, `"summary"`, `"results"`,
		`"started_at"`, `"finished_at"`, `"duration_ms"`, `"title"`, `"error"`,
	} {
		require.Contains(t, string(data), field)
	}
}

func TestReadAll_LegacyFlatResultsDiscarded(t *testing.T) {
	s := newTestStore(t)

	legacy := []map[string]any{
		{"id": "t1", "status": "pass", "url": "https://example.com"},
		{"id": "t2", "status": "fail", "url": "https://example.com"},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
	require.NoError(t, os.WriteFile(s.Path(), data, 0644))

	require.Empty(t, s.ReadAll())

	// Appending over a legacy file starts from an empty history
	require.NoError(t, s.AppendRun(sampleRecord(1)))
	require.Len(t, s.ReadAll(), 1)
}

func TestReadAll_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))
	require.Empty(t, s.ReadAll())

	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"a": 1}`), 0644))
	require.Empty(t, s.ReadAll(), "non-list JSON reads as empty")
}

func TestReplaceAll(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AppendRun(sampleRecord(1)))

	replacement := []model.RunRecord{sampleRecord(2), sampleRecord(3)}
	require.NoError(t, s.ReplaceAll(replacement))

	runs := s.ReadAll()
	require.Len(t, runs, 2)
	require.Len(t, runs[0].Results, 2)
	require.Len(t, runs[1].Results, 3)
}

func TestReplaceAll_NilWritesEmptyList(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ReplaceAll(nil))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(data), "store must stay list-valued")
}
