package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validate re-reads an assembled document and checks it parses as a
// well-formed PDF with the expected page count. Export artifacts are
// stored and served to users, so a malformed byte stream is rejected
// here rather than discovered in a viewer.
func Validate(data []byte, wantPages int) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	rs := bytes.NewReader(data)
	if err := api.Validate(rs, conf); err != nil {
		return fmt.Errorf("pdf validation: %w", err)
	}

	if _, err := rs.Seek(0, 0); err != nil {
		return err
	}
	pages, err := api.PageCount(rs, conf)
	if err != nil {
		return fmt.Errorf("pdf page count: %w", err)
	}
	if pages != wantPages {
		return fmt.Errorf("pdf has %d pages, want %d", pages, wantPages)
	}
	return nil
}
