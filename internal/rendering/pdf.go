package rendering

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPrintTimeout bounds a single headless Chrome print
const DefaultPrintTimeout = 30 * time.Second

// Letter paper size in inches
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
)

// PDFPrinter converts a standalone HTML document into PDF bytes
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ChromePrinter prints HTML to PDF with a headless Chrome/Chromium instance.
// Requires Chrome/Chromium to be installed on the system.
type ChromePrinter struct {
	// ExecPath overrides the browser binary; empty uses chromedp's lookup
	ExecPath string
	Timeout  time.Duration
}

// NewChromePrinter creates a ChromePrinter. A non-positive timeout selects DefaultPrintTimeout.
func NewChromePrinter(execPath string, timeout time.Duration) *ChromePrinter {
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}
	return &ChromePrinter{ExecPath: execPath, Timeout: timeout}
}

// PrintPDF loads html into a blank page and prints it on Letter paper with backgrounds
func (p *ChromePrinter) PrintPDF(ctx context.Context, html []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to get frame tree: %w", err)
			}
			return page.SetDocumentContent(frameTree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print failed: %w", err)
	}

	return pdf, nil
}
