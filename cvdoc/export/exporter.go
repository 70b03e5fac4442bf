package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"businessconnect-backend/cvdoc/capture"
	"businessconnect-backend/cvdoc/docx"
	"businessconnect-backend/cvdoc/model"
	"businessconnect-backend/cvdoc/pdf"
	"businessconnect-backend/cvdoc/render"
	"businessconnect-backend/internal/shared/telemetry"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	defaultPDFTimeout = 90 * time.Second
)

// Artifact is a finished export ready to deliver as a file download.
type Artifact struct {
	FileName string
	MIMEType string
	Bytes    []byte
	Pages    int
}

// RasterizerFactory builds a fresh off-screen surface for one export
// invocation. Each invocation gets its own instance; rasterizers are
// never shared across concurrent exports.
type RasterizerFactory func(ctx context.Context) (capture.Rasterizer, error)

// PDFRequest carries the inputs for one PDF export.
type PDFRequest struct {
	CV            *model.CV
	Template      string
	Customization *model.Customization
	FileName      string
	Scale         float64
}

// Exporter drives the render -> paginate/capture -> assemble pipeline and
// owns the scoped lifecycle of the off-screen surface.
type Exporter struct {
	Registry      *render.Registry
	NewRasterizer RasterizerFactory
	Capture       capture.Options
	Timeout       time.Duration
}

// NewExporter wires an exporter over the given template registry and
// rasterizer factory.
func NewExporter(registry *render.Registry, factory RasterizerFactory) *Exporter {
	return &Exporter{
		Registry:      registry,
		NewRasterizer: factory,
		Timeout:       defaultPDFTimeout,
	}
}

// ExportPDF runs the full raster pipeline. The off-screen surface is
// released on every exit path, success or failure.
func (e *Exporter) ExportPDF(ctx context.Context, req PDFRequest) (*Artifact, error) {
	if req.CV == nil || req.Customization == nil || strings.TrimSpace(req.Template) == "" {
		return nil, fmt.Errorf("%w: template, data and customization are all required", ErrMissingInput)
	}
	if e.Registry == nil || e.NewRasterizer == nil {
		return nil, fmt.Errorf("%w: exporter not configured", ErrMissingInput)
	}

	renderer, err := e.Registry.Get(req.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = defaultPDFTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()

	// Export always renders at native scale; magnification belongs to
	// the capture step, never the renderer.
	surface, err := renderer.Render(*req.CV, *req.Customization, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterization, err)
	}

	ras, err := e.NewRasterizer(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterization, err)
	}
	// The surface is removed on every exit path. This is the resource
	// contract of the pipeline, not an optimization.
	defer func() {
		if relErr := ras.Release(); relErr != nil {
			telemetry.Error("export.surface_release_failed", map[string]any{"error": relErr.Error()})
		}
	}()

	opts := e.Capture
	if req.Scale > 0 {
		opts.Scale = req.Scale
	}

	pager, err := capture.NewPager(ctx, ras, surface, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterization, err)
	}

	frames, err := pager.Drain(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterization, err)
	}

	pageW, pageH := opts.PageWidthPx, opts.PageHeightPx
	if pageW <= 0 {
		pageW = surface.PageWidthPx
	}
	if pageW <= 0 {
		pageW = capture.DefaultPageWidthPx
	}
	if pageH <= 0 {
		pageH = capture.DefaultPageHeightPx
	}

	data, err := pdf.Assemble(frames, pageW, pageH)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := pdf.Validate(data, len(frames)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	name := strings.TrimSpace(req.FileName)
	if name == "" {
		name = "cv"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}

	telemetry.Info("export.pdf.complete", map[string]any{
		"template":    surface.TemplateID,
		"pages":       len(frames),
		"bytes":       len(data),
		"duration_ms": float64(time.Since(started).Microseconds()) / 1000.0,
	})

	return &Artifact{FileName: name, MIMEType: mimePDF, Bytes: data, Pages: len(frames)}, nil
}

// ExportWord serializes CV data straight to DOCX, bypassing rendering
// and rasterization entirely.
func (e *Exporter) ExportWord(ctx context.Context, cv *model.CV, customization *model.Customization) (*Artifact, error) {
	if cv == nil || customization == nil {
		return nil, fmt.Errorf("%w: data and customization are required", ErrMissingInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := docx.Assemble(*cv, *customization)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	telemetry.Info("export.docx.complete", map[string]any{"bytes": len(data)})

	return &Artifact{FileName: "cv.docx", MIMEType: mimeDOCX, Bytes: data, Pages: 1}, nil
}
