package render

import (
	"errors"
	"fmt"
	"strings"

	"businessconnect-backend/cvdoc/model"
)

// A4 surface width at the 96-dpi reference. The capture engine owns the
// page height; the renderer only fixes the column width.
const PageWidthPx = 794

// ErrUnknownTemplate is returned when no renderer matches the requested id.
var ErrUnknownTemplate = errors.New("unknown template")

// Surface is the rendered but not yet paginated document: a
// self-contained HTML document of unbounded height.
type Surface struct {
	TemplateID  string
	HTML        string
	PageWidthPx int
}

// Renderer turns CV data plus customization into a document surface.
// Implementations must coerce malformed collections and omit the visual
// block for any missing optional field instead of erroring.
type Renderer interface {
	ID() string
	Render(cv model.CV, opts model.Customization, miniature bool) (Surface, error)
}

// Registry resolves template identifiers to renderers.
type Registry struct {
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry builds a registry from the given renderers. The first one
// is the fallback for an empty template id.
func NewRegistry(renderers ...Renderer) *Registry {
	reg := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, r := range renderers {
		if reg.fallback == "" {
			reg.fallback = r.ID()
		}
		reg.renderers[r.ID()] = r
	}
	return reg
}

// DefaultRegistry returns a registry with every built-in template.
func DefaultRegistry() *Registry {
	return NewRegistry(NewWindowTemplate(), NewModernTemplate())
}

// Get resolves a template id, falling back to the default for "".
func (r *Registry) Get(id string) (Renderer, error) {
	key := strings.TrimSpace(id)
	if key == "" {
		key = r.fallback
	}
	renderer, ok := r.renderers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return renderer, nil
}

// IDs lists the registered template identifiers.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.renderers))
	for id := range r.renderers {
		out = append(out, id)
	}
	return out
}

// view is the data handed to the HTML templates.
type view struct {
	CV        model.CV
	C         model.Customization
	Miniature bool
	PageWidth int
}

func newView(cv model.CV, opts model.Customization, miniature bool) view {
	model.Coerce(&cv)
	if opts == (model.Customization{}) {
		opts = cv.Customization
	}
	if opts.FontSize <= 0 {
		opts.FontSize = model.DefaultCustomization().FontSize
	}
	if opts.Spacing <= 0 {
		opts.Spacing = model.DefaultCustomization().Spacing
	}
	if strings.TrimSpace(opts.PrimaryColor) == "" {
		opts.PrimaryColor = model.DefaultCustomization().PrimaryColor
	}
	if strings.TrimSpace(opts.SecondaryColor) == "" {
		opts.SecondaryColor = model.DefaultCustomization().SecondaryColor
	}
	if strings.TrimSpace(opts.FontFamily) == "" {
		opts.FontFamily = model.DefaultCustomization().FontFamily
	}
	return view{CV: cv, C: opts, Miniature: miniature, PageWidth: PageWidthPx}
}
