// Package runner executes smoke test cases against a page driver and
// aggregates the outcomes into run records.
package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokerun/smokerun/driver"
	"github.com/smokerun/smokerun/model"
)

// NavigationTimeout bounds a single page navigation attempt. The driver
// enforces it; expiry is classified as a driver failure, not a hang.
const NavigationTimeout = 30 * time.Second

// Runner executes cases one at a time, in input order. Per-case failures
// are isolated: a driver failure becomes an error result and the suite
// continues.
type Runner struct {
	logger  zerolog.Logger
	drivers driver.Registry
}

// New returns a Runner dispatching over the given engine registry.
func New(logger zerolog.Logger, drivers driver.Registry) *Runner {
	return &Runner{logger: logger, drivers: drivers}
}

// Execute runs one case to a terminal result. Unsupported engines short
// circuit without touching a driver; navigation and assertion outcomes are
// timed with wall-clock elapsed time from just before the attempt.
func (r *Runner) Execute(ctx context.Context, c model.TestCase) model.TestResult {
	res := model.TestResult{
		ID:     c.ID,
		Engine: c.Engine,
		Name:   c.Name,
		URL:    c.URL,
	}

	drv, ok := r.drivers.Lookup(c.Engine)
	if !ok {
		now := time.Now().UTC()
		res.Status = model.StatusError
		res.StartedAt = now
		res.FinishedAt = now
		res.DurationMs = 0
		res.Error = model.StringPtr(fmt.Sprintf("Unsupported engine: %s", c.Engine))
		return res
	}

	res.StartedAt = time.Now().UTC()
	start := time.Now()

	title, err := drv.Navigate(ctx, c.URL, NavigationTimeout)

	res.FinishedAt = time.Now().UTC()
	res.DurationMs = time.Since(start).Milliseconds()

	if err != nil {
		res.Status = model.StatusError
		res.Error = model.StringPtr(err.Error())
		return res
	}

	res.Title = model.StringPtr(title)
	if strings.Contains(title, c.AssertTitleContains) {
		res.Status = model.StatusPass
	} else {
		res.Status = model.StatusFail
		res.Error = model.StringPtr(fmt.Sprintf(
			"Title assertion failed. Expected to contain: '%s', Actual: '%s'",
			c.AssertTitleContains, title))
	}
	return res
}

// RunAll executes every case in order and packages the results into a
// RunRecord. The result order always equals the input order, and
// len(results) == len(cases).
func (r *Runner) RunAll(ctx context.Context, cases []model.TestCase) model.RunRecord {
	results := make([]model.TestResult, 0, len(cases))
	for _, c := range cases {
		r.logger.Info().Str("id", c.ID).Str("name", c.Name).Msg("Running case")

		res := r.Execute(ctx, c)
		results = append(results, res)

		ev := r.logger.Info().Str("id", res.ID).Str("status", strings.ToUpper(string(res.Status)))
		if res.Error != nil {
			ev = ev.Str("error", *res.Error)
		}
		ev.Msg("Case finished")
	}
	return model.NewRunRecord(results)
}
