package main

// Renders the sample CV with every registered template and assembles
// the DOCX variant, for eyeballing output without running the API:
//   go run ./cmd/renderdemo -out ./out

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"businessconnect-backend/cvdoc/docx"
	"businessconnect-backend/cvdoc/model"
	"businessconnect-backend/cvdoc/render"
)

func main() {
	outDir := flag.String("out", "./out", "output directory for rendered files")
	flag.Parse()

	cv := sampleCV()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir failed: %v\n", err)
		os.Exit(1)
	}

	registry := render.DefaultRegistry()
	for _, id := range registry.IDs() {
		renderer, err := registry.Get(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lookup %s failed: %v\n", id, err)
			os.Exit(1)
		}
		surface, err := renderer.Render(cv, cv.Customization, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render %s failed: %v\n", id, err)
			os.Exit(1)
		}
		if strings.Contains(surface.HTML, "{{") {
			fmt.Fprintf(os.Stderr, "render %s left unresolved tokens\n", id)
			os.Exit(1)
		}
		htmlPath := filepath.Join(*outDir, "cv_"+id+".html")
		if err := os.WriteFile(htmlPath, []byte(surface.HTML), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK: wrote %s\n", htmlPath)
	}

	docxBytes, err := docx.Assemble(cv, cv.Customization)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docx assemble failed: %v\n", err)
		os.Exit(1)
	}
	docxPath := filepath.Join(*outDir, "cv_sample.docx")
	if err := os.WriteFile(docxPath, docxBytes, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	if err := validateDocx(docxBytes); err != nil {
		fmt.Fprintf(os.Stderr, "docx validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", docxPath)

	modelPath := filepath.Join(*outDir, "cv_sample_model.json")
	payload, err := json.MarshalIndent(cv, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(modelPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", modelPath)
}

func sampleCV() model.CV {
	return model.CV{
		PersonalInfo: model.PersonalInfo{
			FirstName: "Awa",
			LastName:  "Diop",
			Title:     "Comptable Senior",
			Email:     "awa.diop@example.com",
			Phone:     "+221 77 123 45 67",
			Address:   "Sacré-Cœur 3",
			City:      "Dakar",
			Country:   "Sénégal",
		},
		Experience: []model.Experience{
			{
				Title:       "Comptable Senior",
				Company:     "Sonatel",
				Location:    "Dakar",
				StartDate:   "2020-01",
				Current:     true,
				Description: "Clôture mensuelle des comptes et reporting au siège.",
			},
			{
				Title:     "Assistante comptable",
				Company:   "CBAO",
				Location:  "Dakar",
				StartDate: "2017-06",
				EndDate:   "2019-12",
			},
		},
		Education: []model.Education{
			{
				Degree:      "Master CCA",
				Institution: "Université Cheikh Anta Diop",
				StartDate:   "2015",
				EndDate:     "2017",
			},
		},
		Skills: []model.Skill{
			{Name: "SAGE", Level: 5},
			{Name: "Excel", Level: 4},
		},
		Languages: []model.Language{
			{Name: "Français", Level: model.LevelNative},
			{Name: "Wolof", Level: model.LevelNative},
			{Name: "Anglais", Level: model.LevelIntermediate},
		},
		Interests: []model.Interest{{Name: "Lecture"}},
		Template:  "window",
	}
}

func validateDocx(docxBytes []byte) error {
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return err
	}

	for _, file := range reader.File {
		if strings.ReplaceAll(file.Name, "\\", "/") != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if strings.Contains(string(content), "{{") {
			return fmt.Errorf("unresolved template tokens in document.xml")
		}
		return nil
	}

	return fmt.Errorf("document.xml not found in docx")
}
