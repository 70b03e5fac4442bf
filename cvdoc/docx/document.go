package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// The static parts of a minimal WordprocessingML package. Only
// word/document.xml varies per CV.
const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

	rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`
)

// writePackage assembles the OOXML zip around the given document.xml and
// styles.xml bodies.
func writePackage(documentXML, stylesXML string) ([]byte, error) {
	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", documentXML},
		{"word/styles.xml", stylesXML},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// docStyle is the document-wide formatting derived once from the
// customization options.
type docStyle struct {
	FontFamily   string
	BaseSize     int // half-points
	HeadingColor string
}

// stylesXMLFor renders styles.xml with the base font and the two heading
// levels the assembler emits.
func stylesXMLFor(s docStyle) string {
	nameSize := s.BaseSize * 2
	headingSize := s.BaseSize * 3 / 2

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:styles xmlns:w="` + wmlNamespace + `">`)
	b.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr>`)
	fmt.Fprintf(&b, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, escape(s.FontFamily), escape(s.FontFamily))
	fmt.Fprintf(&b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, s.BaseSize, s.BaseSize)
	b.WriteString(`</w:rPr></w:rPrDefault></w:docDefaults>`)

	writeHeadingStyle(&b, "Heading1", "heading 1", nameSize, s.HeadingColor)
	writeHeadingStyle(&b, "Heading2", "heading 2", headingSize, s.HeadingColor)

	b.WriteString(`</w:styles>`)
	return b.String()
}

func writeHeadingStyle(b *strings.Builder, id, name string, size int, color string) {
	fmt.Fprintf(b, `<w:style w:type="paragraph" w:styleId="%s">`, id)
	fmt.Fprintf(b, `<w:name w:val="%s"/>`, name)
	b.WriteString(`<w:pPr><w:spacing w:before="240" w:after="120"/></w:pPr>`)
	fmt.Fprintf(b, `<w:rPr><w:b/><w:color w:val="%s"/><w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr>`, color, size, size)
	b.WriteString(`</w:style>`)
}

// docBuilder accumulates body paragraphs for document.xml.
type docBuilder struct {
	body strings.Builder
}

// run is one formatted text run within a paragraph.
type run struct {
	Text   string
	Bold   bool
	Italic bool
	Color  string
}

func (d *docBuilder) heading(styleID, text string) {
	fmt.Fprintf(&d.body, `<w:p><w:pPr><w:pStyle w:val="%s"/></w:pPr><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, styleID, escape(text))
}

func (d *docBuilder) para(runs ...run) {
	d.body.WriteString(`<w:p>`)
	for _, r := range runs {
		d.body.WriteString(`<w:r>`)
		if r.Bold || r.Italic || r.Color != "" {
			d.body.WriteString(`<w:rPr>`)
			if r.Bold {
				d.body.WriteString(`<w:b/>`)
			}
			if r.Italic {
				d.body.WriteString(`<w:i/>`)
			}
			if r.Color != "" {
				fmt.Fprintf(&d.body, `<w:color w:val="%s"/>`, r.Color)
			}
			d.body.WriteString(`</w:rPr>`)
		}
		fmt.Fprintf(&d.body, `<w:t xml:space="preserve">%s</w:t>`, escape(r.Text))
		d.body.WriteString(`</w:r>`)
	}
	d.body.WriteString(`</w:p>`)
}

func (d *docBuilder) text(s string) {
	d.para(run{Text: s})
}

// documentXML closes the body with one continuous A4 section.
func (d *docBuilder) documentXML() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `"><w:body>`)
	b.WriteString(d.body.String())
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
