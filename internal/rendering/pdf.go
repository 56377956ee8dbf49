// Package rendering turns tailored documents into PDF bytes using a headless
// Chrome instance. Markdown is first converted to HTML, styled with a fixed
// stylesheet, then printed to an A4 page.
package rendering

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/easyhired/resumer/internal/artifacts"
	"github.com/easyhired/resumer/internal/types"
)

// A4 dimensions in inches.
const (
	pageWidth  = 8.27
	pageHeight = 11.69
)

const documentStyle = `
body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 11px; line-height: 1.5; color: #24292e; margin: 0.25in; }
h1 { font-size: 22px; margin-bottom: 0.2em; }
h2 { font-size: 14px; border-bottom: 1px solid #d0d7de; padding-bottom: 0.2em; margin-top: 1.2em; }
h3 { font-size: 12px; margin-bottom: 0.2em; }
a { color: #0366d6; text-decoration: underline; }
ul { margin-top: 0.3em; }
hr { border: none; border-top: 1px solid #d0d7de; }
`

// Renderer produces PDF bytes from markdown or structured documents.
type Renderer interface {
	RenderMarkdown(ctx context.Context, markdown string) ([]byte, error)
	RenderResume(ctx context.Context, doc *types.Resume) ([]byte, error)
}

// ChromeRenderer prints documents through a headless Chrome tab. Safe for
// concurrent use; every call runs in its own browser context.
type ChromeRenderer struct {
	markdown goldmark.Markdown
}

// NewChromeRenderer returns a renderer with raw-HTML passthrough enabled, so
// the <strong> tags and styled fragments in renditions survive conversion.
func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{
		markdown: goldmark.New(
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
	}
}

// RenderResume renders the markdown rendition of a tailored resume to PDF.
func (r *ChromeRenderer) RenderResume(ctx context.Context, doc *types.Resume) ([]byte, error) {
	return r.RenderMarkdown(ctx, artifacts.ToMarkdown(doc))
}

// RenderMarkdown converts markdown to styled HTML and prints it to an A4 PDF.
func (r *ChromeRenderer) RenderMarkdown(ctx context.Context, markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := r.markdown.Convert([]byte(markdown), &body); err != nil {
		return nil, &RenderError{Stage: "markdown conversion", Cause: err}
	}
	html := fmt.Sprintf("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>%s</style></head><body>%s</body></html>",
		documentStyle, body.String())
	return r.printHTML(ctx, html)
}

func (r *ChromeRenderer) printHTML(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	url := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPaperWidth(pageWidth).
				WithPaperHeight(pageHeight).
				WithPrintBackground(true).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Stage: "pdf print", Cause: err}
	}
	return pdf, nil
}
