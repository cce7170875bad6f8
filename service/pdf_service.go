package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"bodyshop-work-order/models"
)

// Letter size in inches
const (
	paperWidthIn  = 8.5
	paperHeightIn = 11.0
	marginIn      = 0.4
)

// detectChromePath returns the configured Chrome path when it exists,
// otherwise the first common installation path found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Printf("⚠️  CHROME_PATH %s not found, falling back to auto-detection", configured)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// ChromeRunner loads HTML into a headless Chrome tab and runs actions against it
type ChromeRunner struct {
	chromePath string
	timeout    time.Duration
}

// NewChromeRunner creates a runner. An empty chromePath lets chromedp find Chrome.
func NewChromeRunner(chromePath string, timeout time.Duration) *ChromeRunner {
	return &ChromeRunner{
		chromePath: detectChromePath(chromePath),
		timeout:    timeout,
	}
}

// Run starts a browser, sets the document to html and runs the actions
func (c *ChromeRunner) Run(ctx context.Context, html string, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if c.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var fontsReady bool
	load := chromedp.Tasks{
		chromedp.EmulateViewport(816, 1056), // letter at 96 DPI
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady, awaitPromise),
	}

	tasks := append(load, actions...)
	if err := chromedp.Run(chromedpCtx, tasks); err != nil {
		return err
	}
	return nil
}

// PDFRenderer prints the HTML work order to PDF with headless Chrome
type PDFRenderer struct {
	html   *HTMLRenderer
	chrome *ChromeRunner
}

// Ensure PDFRenderer implements Renderer
var _ Renderer = (*PDFRenderer)(nil)

// NewPDFRenderer creates a new PDFRenderer
func NewPDFRenderer(html *HTMLRenderer, chrome *ChromeRunner) *PDFRenderer {
	return &PDFRenderer{html: html, chrome: chrome}
}

func (r *PDFRenderer) Format() string      { return "pdf" }
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// Render generates the PDF. Nothing is returned unless Chrome produced a complete document.
func (r *PDFRenderer) Render(ctx context.Context, snap models.FormSnapshot) ([]byte, error) {
	htmlContent, err := r.html.Render(ctx, snap)
	if err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = r.chrome.Run(ctx, string(htmlContent),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(marginIn).
				WithMarginBottom(marginIn).
				WithMarginLeft(marginIn).
				WithMarginRight(marginIn).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	if len(pdfBuf) == 0 {
		return nil, fmt.Errorf("failed to generate PDF: empty document")
	}
	return pdfBuf, nil
}

// PreviewRenderer captures the first page as a PNG thumbnail
type PreviewRenderer struct {
	html     *HTMLRenderer
	chrome   *ChromeRunner
	maxWidth int
}

// Ensure PreviewRenderer implements Renderer
var _ Renderer = (*PreviewRenderer)(nil)

// NewPreviewRenderer creates a new PreviewRenderer
func NewPreviewRenderer(html *HTMLRenderer, chrome *ChromeRunner, maxWidth int) *PreviewRenderer {
	return &PreviewRenderer{html: html, chrome: chrome, maxWidth: maxWidth}
}

func (r *PreviewRenderer) Format() string      { return "png" }
func (r *PreviewRenderer) ContentType() string { return "image/png" }

func (r *PreviewRenderer) Render(ctx context.Context, snap models.FormSnapshot) ([]byte, error) {
	htmlContent, err := r.html.Render(ctx, snap)
	if err != nil {
		return nil, err
	}

	var shot []byte
	err = r.chrome.Run(ctx, string(htmlContent),
		chromedp.Sleep(200*time.Millisecond),
		chromedp.CaptureScreenshot(&shot),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture preview: %w", err)
	}
	if len(shot) == 0 {
		return nil, fmt.Errorf("failed to capture preview: empty screenshot")
	}

	return OptimizePreview(shot, r.maxWidth)
}
