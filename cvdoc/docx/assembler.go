package docx

import (
	"errors"
	"strings"

	"businessconnect-backend/cvdoc/model"
)

// Assemble serializes CV data directly into a DOCX byte stream. This is
// a deliberate second code path next to the raster PDF pipeline: DOCX
// wants structured text runs, not page images, so it reads the data
// model and never touches the renderer.
//
// Sections whose source collection is empty are omitted entirely,
// heading included.
func Assemble(cv model.CV, opts model.Customization) ([]byte, error) {
	model.Coerce(&cv)
	if opts == (model.Customization{}) {
		opts = cv.Customization
	}

	name := cv.PersonalInfo.FullName()
	if name == "" {
		return nil, errors.New("a name is required to build the document")
	}

	style := styleFrom(opts)
	var doc docBuilder

	doc.heading("Heading1", name)
	if title := strings.TrimSpace(cv.PersonalInfo.Title); title != "" {
		doc.heading("Heading2", title)
	}
	if contact := contactLine(cv.PersonalInfo); contact != "" {
		doc.text(contact)
	}

	if summary := strings.TrimSpace(cv.PersonalInfo.Summary); summary != "" {
		doc.heading("Heading2", "Profil")
		doc.text(summary)
	}

	if len(cv.Experience) > 0 {
		doc.heading("Heading2", "Expérience professionnelle")
		for _, exp := range cv.Experience {
			writeExperience(&doc, exp)
		}
	}

	if len(cv.Education) > 0 {
		doc.heading("Heading2", "Formation")
		for _, edu := range cv.Education {
			writeEducation(&doc, edu)
		}
	}

	if len(cv.Skills) > 0 {
		doc.heading("Heading2", "Compétences")
		names := make([]string, 0, len(cv.Skills))
		for _, skill := range cv.Skills {
			if trimmed := strings.TrimSpace(skill.Name); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		if len(names) > 0 {
			doc.text(strings.Join(names, ", "))
		}
	}

	if len(cv.Languages) > 0 {
		doc.heading("Heading2", "Langues")
		for _, lang := range cv.Languages {
			if strings.TrimSpace(lang.Name) == "" {
				continue
			}
			line := lang.Name
			if lang.Level != "" {
				line += " : " + lang.Level
			}
			doc.text(line)
		}
	}

	return writePackage(doc.documentXML(), stylesXMLFor(style))
}

func writeExperience(doc *docBuilder, exp model.Experience) {
	head := strings.TrimSpace(exp.Title)
	if company := strings.TrimSpace(exp.Company); company != "" {
		if head != "" {
			head += " — " + company
		} else {
			head = company
		}
	}
	if head != "" {
		doc.para(run{Text: head, Bold: true})
	}

	meta := make([]string, 0, 2)
	if dates := joinDates(exp.StartDate, exp.DisplayEndDate()); dates != "" {
		meta = append(meta, dates)
	}
	if loc := strings.TrimSpace(exp.Location); loc != "" {
		meta = append(meta, loc)
	}
	if len(meta) > 0 {
		doc.para(run{Text: strings.Join(meta, " · "), Italic: true})
	}

	if desc := strings.TrimSpace(exp.Description); desc != "" {
		doc.text(desc)
	}
	for _, item := range exp.Achievements {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			doc.text("• " + trimmed)
		}
	}
}

func writeEducation(doc *docBuilder, edu model.Education) {
	head := strings.TrimSpace(edu.Degree)
	if field := strings.TrimSpace(edu.Field); field != "" {
		if head != "" {
			head += " — " + field
		} else {
			head = field
		}
	}
	if head != "" {
		doc.para(run{Text: head, Bold: true})
	}

	meta := make([]string, 0, 2)
	if inst := strings.TrimSpace(edu.Institution); inst != "" {
		meta = append(meta, inst)
	}
	if dates := joinDates(edu.StartDate, edu.EndDate); dates != "" {
		meta = append(meta, dates)
	}
	if len(meta) > 0 {
		doc.para(run{Text: strings.Join(meta, " · "), Italic: true})
	}

	if desc := strings.TrimSpace(edu.Description); desc != "" {
		doc.text(desc)
	}
}

// contactLine joins email, phone and address with " | ", skipping blanks.
func contactLine(p model.PersonalInfo) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Email, p.Phone, p.Address} {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " | ")
}

func joinDates(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}

// styleFrom derives the document-wide style once from the customization.
func styleFrom(opts model.Customization) docStyle {
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = model.DefaultCustomization().FontSize
	}
	// px at 96 dpi to half-points.
	baseSize := fontSize * 72 * 2 / 96

	family := strings.TrimSpace(opts.FontFamily)
	if idx := strings.IndexByte(family, ','); idx >= 0 {
		family = strings.TrimSpace(family[:idx])
	}
	if family == "" {
		family = "Helvetica"
	}

	color := strings.TrimPrefix(strings.TrimSpace(opts.PrimaryColor), "#")
	if len(color) == 3 {
		expanded := make([]byte, 0, 6)
		for i := 0; i < 3; i++ {
			expanded = append(expanded, color[i], color[i])
		}
		color = string(expanded)
	}
	if len(color) != 6 {
		color = "2563EB"
	}

	return docStyle{FontFamily: family, BaseSize: baseSize, HeadingColor: strings.ToUpper(color)}
}
