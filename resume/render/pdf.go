package render

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFRenderer rasterizes a self-contained HTML document to a paged PDF.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Letter page geometry used for every export: 8.5x11in with 0.5in margins,
// 2x device scale for text crispness.
const (
	letterWidthIn  = 8.5
	letterHeightIn = 11.0
	pageMarginIn   = 0.5
)

// ChromePDFRenderer renders via a headless Chrome instance. Each call
// acquires an isolated, disposable browser context sized to the target page
// and tears it down on every exit path.
type ChromePDFRenderer struct {
	// ExecPath overrides the Chrome binary location; empty means autodetect.
	ExecPath string
	// Timeout bounds a single render. Zero means a 60 second default.
	Timeout time.Duration
}

// RenderHTML writes the document to a scratch file, loads it in a fresh
// headless browser context, waits for layout to settle, and prints to PDF.
func (r *ChromePDFRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := r.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-pdf-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		emulation.SetDeviceMetricsOverride(850, 1100, 2, false),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(letterWidthIn).
				WithPaperHeight(letterHeightIn).
				WithMarginTop(pageMarginIn).
				WithMarginBottom(pageMarginIn).
				WithMarginLeft(pageMarginIn).
				WithMarginRight(pageMarginIn).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
