package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"businessconnect-backend/cvdoc/render"
)

// fakeRasterizer records the calls the pager makes against the shared
// off-screen surface.
type fakeRasterizer struct {
	height        int
	mounted       bool
	mountedWidth  int
	mountedHeight int
	released      bool
	shifts        []int
	captures      int
	captureErr    error
	measureErr    error
	waitedFor     time.Duration
	capturedPNG   []byte
}

func (f *fakeRasterizer) Mount(ctx context.Context, html string, pageWidthPx, pageHeightPx int) error {
	f.mounted = true
	f.mountedWidth = pageWidthPx
	f.mountedHeight = pageHeightPx
	return nil
}

func (f *fakeRasterizer) WaitResources(ctx context.Context, timeout time.Duration) error {
	f.waitedFor = timeout
	return nil
}

func (f *fakeRasterizer) MeasureHeight(ctx context.Context) (int, error) {
	return f.height, f.measureErr
}

func (f *fakeRasterizer) Shift(ctx context.Context, offsetY int) error {
	f.shifts = append(f.shifts, offsetY)
	return nil
}

func (f *fakeRasterizer) Capture(ctx context.Context, w, h int, scale float64) ([]byte, error) {
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	f.captures++
	if f.capturedPNG != nil {
		return f.capturedPNG, nil
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (f *fakeRasterizer) Release() error {
	f.released = true
	return nil
}

func newTestSurface() render.Surface {
	return render.Surface{TemplateID: "window", HTML: "<div id=\"surface\"></div>", PageWidthPx: 794}
}

func TestPagerExactMultipleOfPageHeight(t *testing.T) {
	ras := &fakeRasterizer{height: 3 * DefaultPageHeightPx}
	pager, err := NewPager(context.Background(), ras, newTestSurface(), Options{})
	if err != nil {
		t.Fatalf("new pager: %v", err)
	}

	if pager.Pages() != 3 {
		t.Fatalf("pages = %d, want 3", pager.Pages())
	}

	frames, err := pager.Drain(context.Background())
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}

	wantShifts := []int{0, -DefaultPageHeightPx, -2 * DefaultPageHeightPx}
	if len(ras.shifts) != len(wantShifts) {
		t.Fatalf("shifts = %v, want %v", ras.shifts, wantShifts)
	}
	for i, want := range wantShifts {
		if ras.shifts[i] != want {
			t.Errorf("shift[%d] = %d, want %d", i, ras.shifts[i], want)
		}
	}
	for i, frame := range frames {
		if frame.Index != i {
			t.Errorf("frame[%d].Index = %d", i, frame.Index)
		}
	}
}

func TestPagerRoundsUpPartialPage(t *testing.T) {
	cases := []struct {
		height int
		want   int
	}{
		{0, 0},
		{1, 1},
		{DefaultPageHeightPx, 1},
		{DefaultPageHeightPx + 1, 2},
		{2*DefaultPageHeightPx + 500, 3},
	}
	for _, tc := range cases {
		ras := &fakeRasterizer{height: tc.height}
		pager, err := NewPager(context.Background(), ras, newTestSurface(), Options{})
		if err != nil {
			t.Fatalf("height %d: %v", tc.height, err)
		}
		if pager.Pages() != tc.want {
			t.Errorf("height %d: pages = %d, want %d", tc.height, pager.Pages(), tc.want)
		}
	}
}

func TestPagerOffsetsTileTheSurface(t *testing.T) {
	height := 2*DefaultPageHeightPx + 311
	ras := &fakeRasterizer{height: height}
	pager, err := NewPager(context.Background(), ras, newTestSurface(), Options{})
	if err != nil {
		t.Fatalf("new pager: %v", err)
	}
	if _, err := pager.Drain(context.Background()); err != nil {
		t.Fatalf("drain: %v", err)
	}

	// Offsets must step by exactly one page height, starting at zero, so
	// the captured bands cover [0, height) with no gaps or overlaps.
	for i, shift := range ras.shifts {
		if shift != -i*DefaultPageHeightPx {
			t.Errorf("shift[%d] = %d, want %d", i, shift, -i*DefaultPageHeightPx)
		}
	}
	if covered := len(ras.shifts) * DefaultPageHeightPx; covered < height {
		t.Errorf("pages cover %dpx, surface is %dpx", covered, height)
	}
}

func TestPagerIsSingleUse(t *testing.T) {
	ras := &fakeRasterizer{height: DefaultPageHeightPx}
	pager, err := NewPager(context.Background(), ras, newTestSurface(), Options{})
	if err != nil {
		t.Fatalf("new pager: %v", err)
	}

	if _, ok, err := pager.Next(context.Background()); err != nil || !ok {
		t.Fatalf("first Next: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := pager.Next(context.Background()); ok {
		t.Error("pager must be exhausted after the final page")
	}
	if _, ok, _ := pager.Next(context.Background()); ok {
		t.Error("consumed pager must stay exhausted")
	}
}

func TestPagerPropagatesCaptureFailure(t *testing.T) {
	wantErr := errors.New("cross-origin image")
	ras := &fakeRasterizer{height: DefaultPageHeightPx, captureErr: wantErr}
	pager, err := NewPager(context.Background(), ras, newTestSurface(), Options{})
	if err != nil {
		t.Fatalf("new pager: %v", err)
	}
	if _, _, err := pager.Next(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("capture failure not propagated: %v", err)
	}
}

func TestPagerMountsConfiguredPageGeometry(t *testing.T) {
	ras := &fakeRasterizer{height: 2000}
	opts := Options{PageWidthPx: 612, PageHeightPx: 1000}
	pager, err := NewPager(context.Background(), ras, render.Surface{TemplateID: "window", HTML: "<div id=\"surface\"></div>"}, opts)
	if err != nil {
		t.Fatalf("new pager: %v", err)
	}

	if ras.mountedWidth != 612 || ras.mountedHeight != 1000 {
		t.Errorf("mounted viewport = %dx%d, want 612x1000", ras.mountedWidth, ras.mountedHeight)
	}
	if pager.Pages() != 2 {
		t.Fatalf("pages = %d, want 2", pager.Pages())
	}
	if _, err := pager.Drain(context.Background()); err != nil {
		t.Fatalf("drain: %v", err)
	}
	// The shift step and the capture window must use the same height the
	// viewport was mounted with.
	if len(ras.shifts) != 2 || ras.shifts[1] != -1000 {
		t.Errorf("shifts = %v, want [0 -1000]", ras.shifts)
	}
}

func TestPagerUsesConfiguredResourceWait(t *testing.T) {
	ras := &fakeRasterizer{height: 100}
	if _, err := NewPager(context.Background(), ras, newTestSurface(), Options{ResourceWait: 2 * time.Second}); err != nil {
		t.Fatalf("new pager: %v", err)
	}
	if ras.waitedFor != 2*time.Second {
		t.Errorf("resource wait = %v, want 2s", ras.waitedFor)
	}
	if !ras.mounted {
		t.Error("surface was never mounted")
	}
}
