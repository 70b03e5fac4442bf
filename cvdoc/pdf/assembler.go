package pdf

import (
	"errors"
	"fmt"

	"github.com/signintech/gopdf"

	"businessconnect-backend/cvdoc/capture"
)

// ErrNoPages is returned when assembly is attempted with no page frames;
// a zero-page PDF is never produced.
var ErrNoPages = errors.New("no page frames to assemble")

const ptPerPx = 72.0 / 96.0

// Assemble serializes the ordered page frames into one multi-page PDF.
// Every frame becomes one page of exactly pageWidth x pageHeight pixels
// (96 dpi), the raster stretched edge to edge with no letterboxing.
func Assemble(frames []capture.PageFrame, pageWidthPx, pageHeightPx int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoPages
	}
	if pageWidthPx <= 0 || pageHeightPx <= 0 {
		return nil, fmt.Errorf("invalid page size %dx%d", pageWidthPx, pageHeightPx)
	}

	pageRect := gopdf.Rect{
		W: float64(pageWidthPx) * ptPerPx,
		H: float64(pageHeightPx) * ptPerPx,
	}

	doc := &gopdf.GoPdf{}
	doc.Start(gopdf.Config{Unit: gopdf.UnitPT, PageSize: pageRect})

	for _, frame := range frames {
		if len(frame.PNG) == 0 {
			return nil, fmt.Errorf("page %d has no raster data", frame.Index)
		}

		holder, err := gopdf.ImageHolderByBytes(frame.PNG)
		if err != nil {
			return nil, fmt.Errorf("page %d image: %w", frame.Index, err)
		}

		doc.AddPageWithOption(gopdf.PageOption{PageSize: &pageRect})
		if err := doc.ImageByHolder(holder, 0, 0, &pageRect); err != nil {
			return nil, fmt.Errorf("page %d place image: %w", frame.Index, err)
		}
	}

	out := doc.GetBytesPdf()
	if len(out) == 0 {
		return nil, errors.New("pdf serialization produced no bytes")
	}
	return out, nil
}
