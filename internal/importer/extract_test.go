package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"businessconnect-backend/cvdoc/docx"
	"businessconnect-backend/cvdoc/model"
)

func TestExtractTextFromDOCX(t *testing.T) {
	cv := model.CV{
		PersonalInfo: model.PersonalInfo{
			FirstName: "Awa",
			LastName:  "Diop",
			Email:     "awa@example.com",
			Phone:     "771234567",
		},
		Experience: []model.Experience{
			{Title: "Comptable", Company: "Sonatel"},
		},
	}
	data, err := docx.Assemble(cv, model.Customization{})
	if err != nil {
		t.Fatalf("assemble fixture: %v", err)
	}

	text, err := ExtractText(context.Background(), data, "application/zip", "cv.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	for _, want := range []string{"Awa Diop", "awa@example.com", "Comptable — Sonatel"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q", want)
		}
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte("plain"), "text/plain", "cv.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestNormalizeMimeTypeByExtension(t *testing.T) {
	cases := []struct {
		mime string
		name string
		want string
	}{
		{"application/pdf", "cv.pdf", mimePDF},
		{"APPLICATION/PDF; charset=binary", "cv.pdf", mimePDF},
		{"", "cv.docx", mimeDOCX},
		{"", "cv.pdf", mimePDF},
	}
	for _, tc := range cases {
		if got := normalizeMimeType(tc.mime, tc.name, nil); got != tc.want {
			t.Errorf("normalizeMimeType(%q, %q) = %q, want %q", tc.mime, tc.name, got, tc.want)
		}
	}
}
