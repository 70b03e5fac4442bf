package capture

import (
	"context"
	"fmt"
	"time"

	"businessconnect-backend/cvdoc/render"
)

// A4 proportions at the 96-dpi reference, and the default capture
// quality multiplier.
const (
	DefaultPageWidthPx  = 794
	DefaultPageHeightPx = 1123
	DefaultScale        = 3.0
	DefaultResourceWait = 8 * time.Second
)

// PageFrame is one captured raster image corresponding to one output page.
type PageFrame struct {
	Index int
	PNG   []byte
}

// Rasterizer is the off-screen rendering surface. One instance belongs to
// exactly one export invocation; implementations are not safe for
// concurrent use because Shift mutates the shared surface offset.
type Rasterizer interface {
	// Mount loads the document surface into an off-screen window sized
	// to one page; content taller than pageHeightPx overflows and is
	// captured band by band.
	Mount(ctx context.Context, html string, pageWidthPx, pageHeightPx int) error
	// WaitResources blocks until embedded images and fonts are ready, a
	// failed load counting as ready. It returns nil on timeout: a hung
	// resource must not hang the export.
	WaitResources(ctx context.Context, timeout time.Duration) error
	// MeasureHeight reports the surface's total rendered height in pixels.
	MeasureHeight(ctx context.Context) (int, error)
	// Shift moves the surface vertically by offsetY pixels (negative
	// moves content up) and settles one rendering frame.
	Shift(ctx context.Context, offsetY int) error
	// Capture rasterizes the page-sized window at the given scale.
	Capture(ctx context.Context, widthPx, heightPx int, scale float64) ([]byte, error)
	// Release tears the surface down. Safe to call more than once.
	Release() error
}

// Options controls pagination geometry and capture quality.
type Options struct {
	PageWidthPx  int
	PageHeightPx int
	Scale        float64
	ResourceWait time.Duration
}

func (o Options) withDefaults() Options {
	if o.PageWidthPx <= 0 {
		o.PageWidthPx = DefaultPageWidthPx
	}
	if o.PageHeightPx <= 0 {
		o.PageHeightPx = DefaultPageHeightPx
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.ResourceWait <= 0 {
		o.ResourceWait = DefaultResourceWait
	}
	return o
}

// Pager yields page frames one at a time. It is single-use: each Next
// mutates the shared surface offset, so frames cannot be revisited or
// captured out of order.
type Pager struct {
	ras    Rasterizer
	opts   Options
	height int
	pages  int
	next   int
}

// NewPager mounts the surface, waits for embedded resources, measures the
// total height and fixes the page count at ceil(height/pageHeight).
func NewPager(ctx context.Context, ras Rasterizer, surface render.Surface, opts Options) (*Pager, error) {
	opts = opts.withDefaults()
	if surface.PageWidthPx > 0 {
		opts.PageWidthPx = surface.PageWidthPx
	}

	if err := ras.Mount(ctx, surface.HTML, opts.PageWidthPx, opts.PageHeightPx); err != nil {
		return nil, fmt.Errorf("mount surface: %w", err)
	}
	if err := ras.WaitResources(ctx, opts.ResourceWait); err != nil {
		return nil, fmt.Errorf("wait resources: %w", err)
	}
	height, err := ras.MeasureHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("measure surface: %w", err)
	}
	if height < 0 {
		height = 0
	}

	pages := (height + opts.PageHeightPx - 1) / opts.PageHeightPx

	return &Pager{ras: ras, opts: opts, height: height, pages: pages}, nil
}

// Pages reports the fixed page count.
func (p *Pager) Pages() int { return p.pages }

// Height reports the measured surface height in pixels.
func (p *Pager) Height() int { return p.height }

// Next captures and returns the next page frame. The second return is
// false once every page has been produced.
func (p *Pager) Next(ctx context.Context) (PageFrame, bool, error) {
	if p.next >= p.pages {
		return PageFrame{}, false, nil
	}

	index := p.next
	if err := p.ras.Shift(ctx, -index*p.opts.PageHeightPx); err != nil {
		return PageFrame{}, false, fmt.Errorf("shift to page %d: %w", index, err)
	}
	png, err := p.ras.Capture(ctx, p.opts.PageWidthPx, p.opts.PageHeightPx, p.opts.Scale)
	if err != nil {
		return PageFrame{}, false, fmt.Errorf("capture page %d: %w", index, err)
	}

	p.next++
	return PageFrame{Index: index, PNG: png}, true, nil
}

// Drain captures every remaining frame in order.
func (p *Pager) Drain(ctx context.Context) ([]PageFrame, error) {
	frames := make([]PageFrame, 0, p.pages-p.next)
	for {
		frame, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return frames, nil
		}
		frames = append(frames, frame)
	}
}
