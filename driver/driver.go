// Package driver abstracts the browser automation engines that execute
// smoke test navigation.
package driver

import (
	"context"
	"time"
)

// PageDriver is the capability a browser engine must provide: navigate to a
// URL, wait for the page to become ready, and return its title. Timeouts
// and any driver-internal failures surface as the returned error.
type PageDriver interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) (title string, err error)
}

// Registry maps engine identifiers to page drivers. Adding a new automation
// engine is a registration, not a new conditional in the runner.
type Registry map[string]PageDriver

// Register binds an engine identifier to a driver, replacing any previous
// binding for the same name.
func (r Registry) Register(engine string, d PageDriver) {
	r[engine] = d
}

// Lookup returns the driver for an engine identifier.
func (r Registry) Lookup(engine string) (PageDriver, bool) {
	d, ok := r[engine]
	return d, ok
}

// DefaultRegistry returns the built-in engine table. The chromedp driver is
// registered under both "chromedp" and "playwright": existing case sheets
// name the engine the suite was originally authored against, and the
// capability is the same headless-Chromium navigation.
func DefaultRegistry() Registry {
	cd := NewChromedp()
	return Registry{
		"chromedp":   cd,
		"playwright": cd,
	}
}
