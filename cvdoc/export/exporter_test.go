package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"businessconnect-backend/cvdoc/capture"
	"businessconnect-backend/cvdoc/model"
	"businessconnect-backend/cvdoc/render"
)

// fakeSurface implements capture.Rasterizer over a fixed height and a
// generated raster, so the full pipeline runs without a browser.
type fakeSurface struct {
	height     int
	mountErr   error
	captureErr error
	released   int
	captures   int
}

func (f *fakeSurface) Mount(ctx context.Context, html string, pageWidthPx, pageHeightPx int) error {
	return f.mountErr
}

func (f *fakeSurface) WaitResources(ctx context.Context, timeout time.Duration) error {
	return nil
}

func (f *fakeSurface) MeasureHeight(ctx context.Context) (int, error) {
	return f.height, nil
}

func (f *fakeSurface) Shift(ctx context.Context, offsetY int) error {
	return nil
}

func (f *fakeSurface) Capture(ctx context.Context, w, h int, scale float64) ([]byte, error) {
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	f.captures++
	img := image.NewRGBA(image.Rect(0, 0, 60, 85))
	for y := 0; y < 85; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, color.RGBA{R: 230, G: 230, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *fakeSurface) Release() error {
	f.released++
	return nil
}

func testExporter(surface *fakeSurface, factoryCalls *int) *Exporter {
	factory := func(ctx context.Context) (capture.Rasterizer, error) {
		if factoryCalls != nil {
			*factoryCalls++
		}
		return surface, nil
	}
	return NewExporter(render.DefaultRegistry(), factory)
}

func testCV() *model.CV {
	return &model.CV{
		PersonalInfo: model.PersonalInfo{
			FirstName: "Awa",
			LastName:  "Diop",
			Email:     "awa@example.com",
			Phone:     "771234567",
		},
	}
}

func testCustomization() *model.Customization {
	c := model.DefaultCustomization()
	return &c
}

func TestExportPDFProducesOnePagePerFrame(t *testing.T) {
	surface := &fakeSurface{height: 2*capture.DefaultPageHeightPx + 100}
	e := testExporter(surface, nil)

	artifact, err := e.ExportPDF(context.Background(), PDFRequest{
		CV:            testCV(),
		Template:      "window",
		Customization: testCustomization(),
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if artifact.Pages != 3 {
		t.Errorf("pages = %d, want 3", artifact.Pages)
	}
	if surface.captures != 3 {
		t.Errorf("captures = %d, want 3", surface.captures)
	}
	if artifact.MIMEType != "application/pdf" {
		t.Errorf("mime = %q", artifact.MIMEType)
	}
	if artifact.FileName != "cv.pdf" {
		t.Errorf("file name = %q", artifact.FileName)
	}
	if !bytes.HasPrefix(artifact.Bytes, []byte("%PDF")) {
		t.Error("artifact is not a PDF byte stream")
	}
	if surface.released != 1 {
		t.Errorf("surface released %d times, want 1", surface.released)
	}
}

func TestExportPDFFailsFastOnMissingInput(t *testing.T) {
	var factoryCalls int
	e := testExporter(&fakeSurface{height: 100}, &factoryCalls)

	cases := []PDFRequest{
		{Template: "window", Customization: testCustomization()},
		{CV: testCV(), Customization: testCustomization()},
		{CV: testCV(), Template: "window"},
		{CV: testCV(), Template: "no-such-template", Customization: testCustomization()},
	}
	for i, req := range cases {
		if _, err := e.ExportPDF(context.Background(), req); !errors.Is(err, ErrMissingInput) {
			t.Errorf("case %d: err = %v, want ErrMissingInput", i, err)
		}
	}
	if factoryCalls != 0 {
		t.Errorf("factory called %d times before validation passed", factoryCalls)
	}
}

func TestExportPDFReleasesSurfaceOnFailure(t *testing.T) {
	surface := &fakeSurface{height: capture.DefaultPageHeightPx, captureErr: errors.New("capture boom")}
	e := testExporter(surface, nil)

	_, err := e.ExportPDF(context.Background(), PDFRequest{
		CV:            testCV(),
		Template:      "window",
		Customization: testCustomization(),
	})
	if !errors.Is(err, ErrRasterization) {
		t.Fatalf("err = %v, want ErrRasterization", err)
	}
	if surface.released != 1 {
		t.Errorf("surface released %d times after failure, want 1", surface.released)
	}
}

func TestExportPDFEmptySurfaceIsSerializationFailure(t *testing.T) {
	surface := &fakeSurface{height: 0}
	e := testExporter(surface, nil)

	_, err := e.ExportPDF(context.Background(), PDFRequest{
		CV:            testCV(),
		Template:      "window",
		Customization: testCustomization(),
	})
	if !errors.Is(err, ErrSerialization) {
		t.Fatalf("err = %v, want ErrSerialization for a zero-page document", err)
	}
	if surface.released != 1 {
		t.Error("surface must be released even when assembly fails")
	}
}

func TestExportPDFFileNameSuffix(t *testing.T) {
	surface := &fakeSurface{height: 200}
	e := testExporter(surface, nil)

	artifact, err := e.ExportPDF(context.Background(), PDFRequest{
		CV:            testCV(),
		Template:      "modern",
		Customization: testCustomization(),
		FileName:      "cv-awa-diop",
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if artifact.FileName != "cv-awa-diop.pdf" {
		t.Errorf("file name = %q", artifact.FileName)
	}
}

func TestExportWord(t *testing.T) {
	e := NewExporter(render.DefaultRegistry(), nil)

	artifact, err := e.ExportWord(context.Background(), testCV(), testCustomization())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if artifact.FileName != "cv.docx" {
		t.Errorf("file name = %q", artifact.FileName)
	}
	if !strings.Contains(artifact.MIMEType, "wordprocessingml") {
		t.Errorf("mime = %q", artifact.MIMEType)
	}
	// DOCX is a zip; check the magic.
	if !bytes.HasPrefix(artifact.Bytes, []byte("PK")) {
		t.Error("artifact is not a zip package")
	}
}

func TestExportWordMissingInput(t *testing.T) {
	e := NewExporter(render.DefaultRegistry(), nil)

	if _, err := e.ExportWord(context.Background(), nil, testCustomization()); !errors.Is(err, ErrMissingInput) {
		t.Errorf("nil data: err = %v", err)
	}
	if _, err := e.ExportWord(context.Background(), testCV(), nil); !errors.Is(err, ErrMissingInput) {
		t.Errorf("nil customization: err = %v", err)
	}
}

func TestExportWordNamelessCVIsSerializationFailure(t *testing.T) {
	e := NewExporter(render.DefaultRegistry(), nil)

	if _, err := e.ExportWord(context.Background(), &model.CV{}, testCustomization()); !errors.Is(err, ErrSerialization) {
		t.Errorf("err = %v, want ErrSerialization", err)
	}
}
