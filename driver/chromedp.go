package driver

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// Chromedp drives a headless Chromium instance via the DevTools protocol.
// Each Navigate call launches a fresh browser so one case's crashed tab
// cannot leak into the next.
type Chromedp struct {
	headless bool
}

// NewChromedp returns a headless chromedp driver.
func NewChromedp() *Chromedp {
	return &Chromedp{headless: true}
}

// Navigate loads url, waits for the document to be ready, and returns the
// page title. The timeout bounds the whole attempt including browser
// startup; expiry surfaces as a context error.
func (d *Chromedp) Navigate(ctx context.Context, url string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", d.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var title string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Title(&title),
	)
	if err != nil {
		return "", err
	}
	return title, nil
}
