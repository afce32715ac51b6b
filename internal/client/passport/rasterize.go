package passport

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrRasterizerUnavailable means no headless browser could be found.
var ErrRasterizerUnavailable = errors.New("rasterizer unavailable")

// Rasterizer turns a rendered HTML document into a PNG image.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) ([]byte, error)
}

// ChromeRasterizer screenshots the document in headless Chrome.
type ChromeRasterizer struct {
	Width   int64
	Height  int64
	Timeout time.Duration

	lookPath func(string) (string, error)
}

func NewChromeRasterizer() *ChromeRasterizer {
	return &ChromeRasterizer{Width: 760, Height: 440, Timeout: 30 * time.Second, lookPath: exec.LookPath}
}

var browserNames = []string{"chromium-browser", "chromium", "google-chrome", "google-chrome-stable"}

// Available reports whether a browser binary is on PATH.
func (r *ChromeRasterizer) Available() bool {
	for _, name := range browserNames {
		if _, err := r.lookPath(name); err == nil {
			return true
		}
	}
	return false
}

func (r *ChromeRasterizer) Rasterize(ctx context.Context, html string) ([]byte, error) {
	if !r.Available() {
		return nil, fmt.Errorf("%w: chromium not installed", ErrRasterizerUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var png []byte
	err := chromedp.Run(taskCtx,
		chromedp.EmulateViewport(r.Width, r.Height),
		chromedp.Navigate(dataURL(html)),
		chromedp.WaitReady(".passport"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			png, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithFromSurface(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome screenshot failed: %w", err)
	}
	return png, nil
}

func dataURL(html string) string {
	return "data:text/html;charset=utf-8," + encodeComponent(html)
}
