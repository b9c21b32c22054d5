package model

import "time"

// Status of a single executed test case.
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusError Status = "error"
)

// TestResult records the outcome of executing one TestCase.
// Exactly one of {pass with Error == nil} or {fail/error with Error != nil}
// holds; Title is set whenever the page driver returned a title (pass, and
// fail on assertion mismatch).
type TestResult struct {
	ID     string `json:"id"`
	Engine string `json:"engine"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Status Status `json:"status"`
	// Timestamps are UTC, serialized as RFC 3339 (ISO-8601)
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// Wall-clock elapsed time of the attempt, never negative
	DurationMs int64   `json:"duration_ms"`
	Title      *string `json:"title"`
	Error      *string `json:"error"`
}

// Summary partitions a run's results by status. The counts always sum to
// the number of results in the run.
type Summary struct {
	Pass  int `json:"pass"`
	Fail  int `json:"fail"`
	Error int `json:"error"`
}

// Summarize counts results by status.
func Summarize(results []TestResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Pass++
		case StatusFail:
			s.Fail++
		case StatusError:
			s.Error++
		}
	}
	return s
}

// RunRecord is one complete suite execution. Results keep input case order
// and are never mutated after the record is appended to history.
type RunRecord struct {
	ExecutedAt time.Time    `json:"executed_at"`
	Summary    Summary      `json:"summary"`
	Results    []TestResult `json:"results"`
}

// NewRunRecord packages an ordered result list with its computed summary.
// ExecutedAt is the aggregation time, not any individual case's start.
func NewRunRecord(results []TestResult) RunRecord {
	return RunRecord{
		ExecutedAt: time.Now().UTC(),
		Summary:    Summarize(results),
		Results:    results,
	}
}

// StringPtr returns a pointer to s. Results use nullable strings so that
// absent titles and errors serialize as JSON null.
func StringPtr(s string) *string {
	return &s
}
