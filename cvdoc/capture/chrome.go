package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// ChromeRasterizer drives one headless Chrome tab as the off-screen
// container. Each instance owns its own tab and temp directory, so
// concurrent exports never share a surface.
type ChromeRasterizer struct {
	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	tmpDir      string
	released    bool
}

// NewChromeRasterizer starts a dedicated headless tab. The caller must
// Release it on every exit path. execPath overrides browser discovery;
// empty falls back to the CHROME_PATH env var, then chromedp defaults.
func NewChromeRasterizer(ctx context.Context, execPath string) (*ChromeRasterizer, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if execPath == "" {
		execPath = os.Getenv("CHROME_PATH")
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tab, cancelTab := chromedp.NewContext(allocCtx)

	return &ChromeRasterizer{
		tab:         tab,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}, nil
}

// Mount implements Rasterizer. The HTML is written to a temp file and
// navigated to, matching how the surface would load over file://.
func (r *ChromeRasterizer) Mount(ctx context.Context, html string, pageWidthPx, pageHeightPx int) error {
	tmpDir, err := os.MkdirTemp("", "cvexport-")
	if err != nil {
		return err
	}
	r.tmpDir = tmpDir

	htmlPath := filepath.Join(tmpDir, "surface.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return err
	}

	if pageHeightPx <= 0 {
		pageHeightPx = DefaultPageHeightPx
	}
	return chromedp.Run(r.tab,
		chromedp.EmulateViewport(int64(pageWidthPx), int64(pageHeightPx)),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("#surface", chromedp.ByID),
	)
}

// WaitResources implements Rasterizer: it polls until every image is
// complete (load errors count as complete) and the font set is loaded,
// then gives up silently after the timeout.
func (r *ChromeRasterizer) WaitResources(ctx context.Context, timeout time.Duration) error {
	const expr = `Array.from(document.images).every(function(img) { return img.complete; }) && document.fonts.status === "loaded"`

	deadline := time.Now().Add(timeout)
	for {
		var ready bool
		if err := chromedp.Run(r.tab, chromedp.Evaluate(expr, &ready)); err != nil {
			return err
		}
		if ready {
			return nil
		}
		if time.Now().After(deadline) {
			// Proceed with whatever loaded; a hung resource costs at
			// most a missing image, never a hung export.
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// MeasureHeight implements Rasterizer.
func (r *ChromeRasterizer) MeasureHeight(ctx context.Context) (int, error) {
	var height int
	err := chromedp.Run(r.tab,
		chromedp.Evaluate(`document.getElementById("surface").scrollHeight`, &height),
	)
	if err != nil {
		return 0, err
	}
	return height, nil
}

// Shift implements Rasterizer: translate the surface vertically and wait
// two animation frames so layout settles before the capture.
func (r *ChromeRasterizer) Shift(ctx context.Context, offsetY int) error {
	setTransform := fmt.Sprintf(
		`document.getElementById("surface").style.transform = "translateY(%dpx)"`, offsetY)
	const settle = `new Promise(function(resolve) {
		requestAnimationFrame(function() { requestAnimationFrame(resolve); });
	})`

	return chromedp.Run(r.tab,
		chromedp.Evaluate(setTransform, nil),
		chromedp.Evaluate(settle, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	)
}

// Capture implements Rasterizer: rasterize exactly the page-sized window
// at the requested magnification.
func (r *ChromeRasterizer) Capture(ctx context.Context, widthPx, heightPx int, scale float64) ([]byte, error) {
	var png []byte
	err := chromedp.Run(r.tab, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		png, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithClip(&page.Viewport{
				X:      0,
				Y:      0,
				Width:  float64(widthPx),
				Height: float64(heightPx),
				Scale:  scale,
			}).
			WithCaptureBeyondViewport(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return png, nil
}

// Release implements Rasterizer.
func (r *ChromeRasterizer) Release() error {
	if r.released {
		return nil
	}
	r.released = true
	r.cancelTab()
	r.cancelAlloc()
	if r.tmpDir != "" {
		return os.RemoveAll(r.tmpDir)
	}
	return nil
}

var _ Rasterizer = (*ChromeRasterizer)(nil)
