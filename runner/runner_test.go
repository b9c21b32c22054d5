package runner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/smokerun/smokerun/driver"
	"github.com/smokerun/smokerun/model"
)

// stubDriver returns a fixed title or error and counts invocations.
type stubDriver struct {
	title string
	err   error
	calls int
}

func (d *stubDriver) Navigate(ctx context.Context, url string, timeout time.Duration) (string, error) {
	d.calls++
	return d.title, d.err
}

func newTestRunner(d driver.PageDriver) *Runner {
	reg := driver.Registry{}
	reg.Register("browser", d)
	return New(zerolog.Nop(), reg)
}

func TestExecute_Pass(t *testing.T) {
	stub := &stubDriver{title: "Example Domain"}
	r := newTestRunner(stub)

	res := r.Execute(context.Background(), model.TestCase{
		ID: "t1", Engine: "browser", URL: "https://example.com",
		AssertTitleContains: "Example",
	})

	require.Equal(t, model.StatusPass, res.Status)
	require.Nil(t, res.Error)
	require.NotNil(t, res.Title)
	require.Equal(t, "Example Domain", *res.Title)
	require.Equal(t, 1, stub.calls)
	require.GreaterOrEqual(t, res.DurationMs, int64(0))
	require.False(t, res.FinishedAt.Before(res.StartedAt))
}

func TestExecute_FailIncludesExpectedAndActual(t *testing.T) {
	stub := &stubDriver{title: "Other"}
	r := newTestRunner(stub)

	res := r.Execute(context.Background(), model.TestCase{
		ID: "t1", Engine: "browser", URL: "https://example.com",
		AssertTitleContains: "Example",
	})

	require.Equal(t, model.StatusFail, res.Status)
	require.NotNil(t, res.Title)
	require.Equal(t, "Other", *res.Title)
	require.NotNil(t, res.Error)
	require.Equal(t,
		"Title assertion failed. Expected to contain: 'Example', Actual: 'Other'",
		*res.Error)
}

func TestExecute_EmptyNeedleAlwaysPasses(t *testing.T) {
	stub := &stubDriver{title: "Whatever"}
	r := newTestRunner(stub)

	res := r.Execute(context.Background(), model.TestCase{
		ID: "t1", Engine: "browser", URL: "https://example.com",
	})

	require.Equal(t, model.StatusPass, res.Status)
	require.Nil(t, res.Error)
}

func TestExecute_UnsupportedEngine(t *testing.T) {
	stub := &stubDriver{title: "Example"}
	r := newTestRunner(stub)

	res := r.Execute(context.Background(), model.TestCase{
		ID: "t1", Engine: "selenium", URL: "https://example.com",
	})

	require.Equal(t, model.StatusError, res.Status)
	require.Equal(t, int64(0), res.DurationMs)
	require.NotNil(t, res.Error)
	require.Equal(t, "Unsupported engine: selenium", *res.Error)
	require.Nil(t, res.Title)
	require.Equal(t, 0, stub.calls, "driver must not be invoked")
}

func TestExecute_DriverFailure(t *testing.T) {
	stub := &stubDriver{err: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	r := newTestRunner(stub)

	res := r.Execute(context.Background(), model.TestCase{
		ID: "t1", Engine: "browser", URL: "http://nope.invalid",
	})

	require.Equal(t, model.StatusError, res.Status)
	require.Nil(t, res.Title)
	require.NotNil(t, res.Error)
	require.Contains(t, *res.Error, "ERR_NAME_NOT_RESOLVED")
}

func TestRunAll_OrderAndIsolation(t *testing.T) {
	stub := &stubDriver{title: "Example"}
	r := newTestRunner(stub)

	var cases []model.TestCase
	for i := 0; i < 5; i++ {
		engine := "browser"
		if i == 2 {
			engine = "unknown" // must not abort the rest of the suite
		}
		cases = append(cases, model.TestCase{
			ID:                  fmt.Sprintf("t%d", i),
			Engine:              engine,
			URL:                 "https://example.com",
			AssertTitleContains: "Example",
		})
	}

	rec := r.RunAll(context.Background(), cases)

	require.Len(t, rec.Results, len(cases))
	for i, res := range rec.Results {
		require.Equal(t, cases[i].ID, res.ID)
	}
	require.Equal(t, model.Summary{Pass: 4, Error: 1}, rec.Summary)
	require.Equal(t, len(cases), rec.Summary.Pass+rec.Summary.Fail+rec.Summary.Error)
	require.False(t, rec.ExecutedAt.IsZero())
}

func TestRunAll_Empty(t *testing.T) {
	r := newTestRunner(&stubDriver{})
	rec := r.RunAll(context.Background(), nil)
	require.Empty(t, rec.Results)
	require.Equal(t, model.Summary{}, rec.Summary)
}
