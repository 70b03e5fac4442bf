package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"businessconnect-backend/cvdoc/model"
)

func readZipEntry(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(body)
	}
	t.Fatalf("package has no entry %s", name)
	return ""
}

func awaDiopCV() model.CV {
	return model.CV{
		PersonalInfo: model.PersonalInfo{
			FirstName: "Awa",
			LastName:  "Diop",
			Title:     "Comptable",
			Email:     "awa@example.com",
			Phone:     "771234567",
			Summary:   "Comptable avec cinq ans d'expérience.",
		},
		Experience: []model.Experience{
			{
				Title:     "Comptable",
				Company:   "Sonatel",
				StartDate: "2020",
				Current:   true,
				Location:  "Dakar",
				Achievements: []string{
					"Clôture mensuelle des comptes",
				},
			},
		},
		Education: []model.Education{
			{Degree: "Licence", Field: "Comptabilité", Institution: "UCAD", EndDate: "2019"},
		},
		Skills: []model.Skill{
			{Name: "SAGE", Level: 4},
			{Name: "Excel", Level: 5},
		},
		Languages: []model.Language{
			{Name: "Français", Level: model.LevelNative},
			{Name: "Anglais", Level: model.LevelIntermediate},
		},
	}
}

func TestAssembleProducesValidPackage(t *testing.T) {
	data, err := Assemble(awaDiopCV(), model.Customization{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	types := readZipEntry(t, data, "[Content_Types].xml")
	if !strings.Contains(types, "wordprocessingml.document.main+xml") {
		t.Error("content types missing main document override")
	}
	readZipEntry(t, data, "_rels/.rels")
	readZipEntry(t, data, "word/_rels/document.xml.rels")
	readZipEntry(t, data, "word/styles.xml")
}

func TestAssembleDocumentStructure(t *testing.T) {
	data, err := Assemble(awaDiopCV(), model.Customization{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	doc := readZipEntry(t, data, "word/document.xml")

	nameIdx := strings.Index(doc, "Awa Diop")
	if nameIdx < 0 {
		t.Fatal("document does not contain the full name")
	}
	if firstText := strings.Index(doc, "<w:t"); firstText >= 0 && nameIdx < firstText {
		t.Fatal("name is not inside a text run")
	}
	// The name heads the document.
	if titleIdx := strings.Index(doc, "Comptable"); titleIdx >= 0 && titleIdx < nameIdx {
		t.Error("title appears before the name")
	}

	for _, want := range []string{
		"awa@example.com | 771234567",
		"Expérience professionnelle",
		"Comptable — Sonatel",
		"2020 - Présent",
		"• Clôture mensuelle des comptes",
		"Formation",
		"Licence — Comptabilité",
		"Compétences",
		"SAGE, Excel",
		"Langues",
		"Français : Natif",
	} {
		if !strings.Contains(doc, escape(want)) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestAssembleOmitsEmptySections(t *testing.T) {
	cv := model.CV{
		PersonalInfo: model.PersonalInfo{FirstName: "Awa", LastName: "Diop"},
	}
	data, err := Assemble(cv, model.Customization{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	doc := readZipEntry(t, data, "word/document.xml")

	for _, heading := range []string{
		"Profil",
		"Expérience professionnelle",
		"Formation",
		"Compétences",
		"Langues",
	} {
		if strings.Contains(doc, escape(heading)) {
			t.Errorf("empty section %q must be omitted, heading included", heading)
		}
	}
}

func TestAssembleOmitsEmptyTitleHeading(t *testing.T) {
	cv := awaDiopCV()
	cv.PersonalInfo.Title = "  "
	data, err := Assemble(cv, model.Customization{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	doc := readZipEntry(t, data, "word/document.xml")
	if strings.Contains(doc, `<w:t xml:space="preserve"></w:t>`) {
		t.Error("blank title produced an empty run")
	}
	// The standalone title run is gone; "Comptable" survives only inside
	// the summary and the experience heading.
	if strings.Contains(doc, `<w:t xml:space="preserve">Comptable</w:t>`) {
		t.Error("blank title still rendered as its own paragraph")
	}
}

func TestAssembleRequiresName(t *testing.T) {
	if _, err := Assemble(model.CV{}, model.Customization{}); err == nil {
		t.Fatal("a CV without a name must not serialize")
	}
}

func TestAssembleAppliesCustomization(t *testing.T) {
	cv := awaDiopCV()
	opts := model.Customization{
		PrimaryColor: "#0F766E",
		FontFamily:   "Georgia, serif",
		FontSize:     16,
	}
	data, err := Assemble(cv, opts)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	styles := readZipEntry(t, data, "word/styles.xml")

	if !strings.Contains(styles, "0F766E") {
		t.Error("heading color not applied")
	}
	if !strings.Contains(styles, `w:ascii="Georgia"`) {
		t.Error("font family not reduced to its first entry")
	}
	// 16px at 96 dpi is 12pt, so 24 half-points.
	if !strings.Contains(styles, `w:val="24"`) {
		t.Error("base size not derived from the pixel font size")
	}
}

func TestStyleFromDefaults(t *testing.T) {
	style := styleFrom(model.Customization{})
	if style.FontFamily != "Helvetica" {
		t.Errorf("family = %q", style.FontFamily)
	}
	if style.HeadingColor != "2563EB" {
		t.Errorf("color = %q", style.HeadingColor)
	}
	if style.BaseSize != 21 {
		t.Errorf("base size = %d, want 21 half-points for 14px", style.BaseSize)
	}
}

func TestStyleFromExpandsShorthandColor(t *testing.T) {
	style := styleFrom(model.Customization{PrimaryColor: "#0F7"})
	if style.HeadingColor != "00FF77" {
		t.Errorf("color = %q, want 00FF77", style.HeadingColor)
	}

	style = styleFrom(model.Customization{PrimaryColor: "#12345"})
	if style.HeadingColor != "2563EB" {
		t.Errorf("invalid color must fall back to the default, got %q", style.HeadingColor)
	}
}
