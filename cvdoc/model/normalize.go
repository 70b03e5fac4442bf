package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The platform historically shipped several spellings of the same CV
// fields (position vs title, school vs institution, company vs employer).
// Decode canonicalizes them once at the wizard-to-export boundary so the
// pipeline below only ever sees the canonical schema.

// Decode parses a CV payload, accepting legacy field spellings, and
// returns the canonical form with every collection coerced to a non-nil
// slice.
func Decode(data []byte) (CV, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return CV{}, fmt.Errorf("decode cv: %w", err)
	}
	return FromMap(raw), nil
}

// FromMap builds a canonical CV from loosely-typed data. Unknown or
// malformed fields are dropped, never fatal.
func FromMap(raw map[string]any) CV {
	cv := CV{
		Template:      str(raw, "template"),
		Customization: customizationFromMap(asMap(raw["customization"])),
	}

	pi := asMap(raw["personalInfo"])
	if pi == nil {
		pi = asMap(raw["personal_info"])
	}
	cv.PersonalInfo = PersonalInfo{
		FirstName: str(pi, "firstName", "first_name", "prenom"),
		LastName:  str(pi, "lastName", "last_name", "nom"),
		Title:     str(pi, "title", "position", "profession"),
		Email:     str(pi, "email"),
		Phone:     str(pi, "phone", "telephone"),
		Address:   str(pi, "address", "adresse"),
		City:      str(pi, "city", "ville"),
		Country:   str(pi, "country", "pays"),
		Summary:   str(pi, "summary", "profile", "description"),
		Photo:     str(pi, "photo", "photoUrl", "avatar"),
		LinkedIn:  str(pi, "linkedin", "linkedIn"),
		GitHub:    str(pi, "github", "gitHub"),
		Website:   str(pi, "website", "site"),
	}

	for _, item := range asSlice(raw["experience"], raw["experiences"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		cv.Experience = append(cv.Experience, Experience{
			Title:        str(m, "title", "position", "role", "poste"),
			Company:      str(m, "company", "employer", "entreprise"),
			Location:     str(m, "location", "lieu"),
			StartDate:    str(m, "startDate", "start_date", "start"),
			EndDate:      str(m, "endDate", "end_date", "end"),
			Current:      boolean(m, "current", "isCurrent"),
			Description:  str(m, "description"),
			Achievements: strSlice(m, "achievements", "highlights", "realisations"),
		})
	}

	for _, item := range asSlice(raw["education"], raw["educations"], raw["formation"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		cv.Education = append(cv.Education, Education{
			Degree:      str(m, "degree", "diploma", "diplome"),
			Institution: str(m, "institution", "school", "ecole", "etablissement"),
			Field:       str(m, "field", "fieldOfStudy", "domaine"),
			StartDate:   str(m, "startDate", "start_date", "start"),
			EndDate:     str(m, "endDate", "end_date", "end"),
			Description: str(m, "description"),
		})
	}

	for _, item := range asSlice(raw["skills"], raw["competences"]) {
		m := asMap(item)
		if m == nil {
			// A bare string is a valid legacy skill entry.
			if name, ok := item.(string); ok && strings.TrimSpace(name) != "" {
				cv.Skills = append(cv.Skills, Skill{Name: strings.TrimSpace(name), Level: 3})
			}
			continue
		}
		cv.Skills = append(cv.Skills, Skill{
			Name:     str(m, "name", "skill"),
			Level:    level(m, "level", "niveau"),
			Category: str(m, "category", "categorie"),
		})
	}

	for _, item := range asSlice(raw["languages"], raw["langues"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		cv.Languages = append(cv.Languages, Language{
			Name:  str(m, "name", "language", "langue"),
			Level: normalizeLanguageLevel(str(m, "level", "niveau")),
		})
	}

	for _, item := range asSlice(raw["certifications"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		cv.Certifications = append(cv.Certifications, Certification{
			Name:        str(m, "name", "title"),
			Issuer:      str(m, "issuer", "organization", "organisme"),
			Date:        str(m, "date", "dateObtained"),
			Description: str(m, "description"),
		})
	}

	for _, item := range asSlice(raw["projects"], raw["projets"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		cv.Projects = append(cv.Projects, Project{
			Name:        str(m, "name", "title"),
			Description: str(m, "description"),
			URL:         str(m, "url", "link"),
			StartDate:   str(m, "startDate", "start"),
			EndDate:     str(m, "endDate", "end"),
		})
	}

	for _, item := range asSlice(raw["interests"], raw["hobbies"], raw["centresInteret"]) {
		if m := asMap(item); m != nil {
			if name := str(m, "name", "interest"); name != "" {
				cv.Interests = append(cv.Interests, Interest{Name: name})
			}
			continue
		}
		if name, ok := item.(string); ok && strings.TrimSpace(name) != "" {
			cv.Interests = append(cv.Interests, Interest{Name: strings.TrimSpace(name)})
		}
	}

	Coerce(&cv)
	return cv
}

// Coerce replaces nil collections with empty slices and fills a default
// customization, so downstream code never branches on nil.
func Coerce(cv *CV) {
	if cv == nil {
		return
	}
	if cv.Experience == nil {
		cv.Experience = []Experience{}
	}
	if cv.Education == nil {
		cv.Education = []Education{}
	}
	if cv.Skills == nil {
		cv.Skills = []Skill{}
	}
	if cv.Languages == nil {
		cv.Languages = []Language{}
	}
	if cv.Certifications == nil {
		cv.Certifications = []Certification{}
	}
	if cv.Projects == nil {
		cv.Projects = []Project{}
	}
	if cv.Interests == nil {
		cv.Interests = []Interest{}
	}
	if strings.TrimSpace(cv.Customization.FontFamily) == "" {
		def := DefaultCustomization()
		if cv.Customization.PrimaryColor == "" {
			cv.Customization.PrimaryColor = def.PrimaryColor
		}
		if cv.Customization.SecondaryColor == "" {
			cv.Customization.SecondaryColor = def.SecondaryColor
		}
		cv.Customization.FontFamily = def.FontFamily
	}
	if cv.Customization.FontSize <= 0 {
		cv.Customization.FontSize = DefaultCustomization().FontSize
	}
	if cv.Customization.Spacing <= 0 {
		cv.Customization.Spacing = DefaultCustomization().Spacing
	}
}

func customizationFromMap(m map[string]any) Customization {
	if m == nil {
		return DefaultCustomization()
	}
	out := Customization{
		PrimaryColor:   str(m, "primaryColor", "primary_color"),
		SecondaryColor: str(m, "secondaryColor", "secondary_color"),
		FontFamily:     str(m, "fontFamily", "font_family"),
		FontSize:       level(m, "fontSize", "font_size"),
		Spacing:        floating(m, "spacing"),
	}
	return out
}

func normalizeLanguageLevel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "beginner", "débutant", "debutant":
		return LevelBeginner
	case "intermediate", "intermédiaire", "intermediaire":
		return LevelIntermediate
	case "advanced", "avancé", "avance":
		return LevelAdvanced
	case "bilingual", "bilingue":
		return LevelBilingual
	case "native", "natif", "langue maternelle":
		return LevelNative
	default:
		return strings.TrimSpace(raw)
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asSlice returns the first candidate that is a non-empty slice.
func asSlice(candidates ...any) []any {
	for _, c := range candidates {
		if s, ok := c.([]any); ok && len(s) > 0 {
			return s
		}
	}
	return nil
}

func str(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func boolean(m map[string]any, keys ...string) bool {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
	}
	return false
}

func strSlice(m map[string]any, keys ...string) []string {
	for _, key := range keys {
		items, ok := m[key].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func level(m map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

func floating(m map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if v, ok := m[key].(float64); ok {
			return v
		}
	}
	return 0
}
