package importer

import (
	"regexp"
	"strings"

	"businessconnect-backend/cvdoc/model"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// Senegalese mobile numbers, with or without the +221 prefix.
	phoneRe = regexp.MustCompile(`(?:\+?221[\s.-]?)?7[05678](?:[\s.-]?\d{2}){3}\b`)
)

// section headings recognized in French CVs, lowercased.
var sectionHeadings = map[string]string{
	"expérience professionnelle":   "experience",
	"expériences professionnelles": "experience",
	"expérience":                   "experience",
	"parcours professionnel":       "experience",
	"formation":                    "education",
	"formations":                   "education",
	"diplômes":                     "education",
	"compétences":                  "skills",
	"langues":                      "languages",
	"centres d'intérêt":            "interests",
	"profil":                       "summary",
	"résumé":                       "summary",
}

// Prefill turns extracted CV text into a best-effort canonical document
// for the wizard. It recognizes contact details by pattern and splits
// the body on common French section headings; anything it cannot place
// is dropped rather than guessed.
func Prefill(text string) model.CV {
	var cv model.CV

	lines := splitLines(text)
	if len(lines) > 0 {
		applyName(&cv, lines[0])
	}
	if email := emailRe.FindString(text); email != "" {
		cv.PersonalInfo.Email = email
	}
	if phone := phoneRe.FindString(text); phone != "" {
		cv.PersonalInfo.Phone = strings.TrimSpace(phone)
	}

	for section, body := range splitSections(lines) {
		switch section {
		case "summary":
			cv.PersonalInfo.Summary = strings.Join(body, " ")
		case "skills":
			for _, name := range splitList(body) {
				cv.Skills = append(cv.Skills, model.Skill{Name: name, Level: 3})
			}
		case "languages":
			for _, name := range splitList(body) {
				cv.Languages = append(cv.Languages, model.Language{Name: name, Level: model.LevelIntermediate})
			}
		case "interests":
			for _, name := range splitList(body) {
				cv.Interests = append(cv.Interests, model.Interest{Name: name})
			}
		case "experience":
			for _, line := range body {
				cv.Experience = append(cv.Experience, model.Experience{Title: line})
			}
		case "education":
			for _, line := range body {
				cv.Education = append(cv.Education, model.Education{Degree: line})
			}
		}
	}

	model.Coerce(&cv)
	return cv
}

func applyName(cv *model.CV, line string) {
	// The first line of a CV is usually the candidate's name, unless it
	// is already a contact detail.
	if emailRe.MatchString(line) || phoneRe.MatchString(line) {
		return
	}
	parts := strings.Fields(line)
	if len(parts) == 0 || len(parts) > 4 {
		return
	}
	cv.PersonalInfo.FirstName = parts[0]
	if len(parts) > 1 {
		cv.PersonalInfo.LastName = strings.Join(parts[1:], " ")
	}
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// splitSections groups lines under the last seen section heading.
func splitSections(lines []string) map[string][]string {
	out := make(map[string][]string)
	current := ""
	for _, line := range lines {
		if section, ok := sectionHeadings[strings.ToLower(strings.TrimRight(line, " :"))]; ok {
			current = section
			continue
		}
		if current != "" {
			out[current] = append(out[current], line)
		}
	}
	return out
}

// splitList flattens section lines separated by commas, bullets or
// newlines into individual entries.
func splitList(body []string) []string {
	var out []string
	for _, line := range body {
		line = strings.ReplaceAll(line, "•", ",")
		line = strings.ReplaceAll(line, ";", ",")
		for _, item := range strings.Split(line, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
