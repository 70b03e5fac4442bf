package model

import (
	"errors"
	"fmt"
	"strings"
)

// CV is the canonical in-memory representation of one résumé.
// The wizard UI owns and mutates it; the export pipeline reads it only.
type CV struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Languages      []Language      `json:"languages"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Interests      []Interest      `json:"interests"`
	Template       string          `json:"template"`
	Customization  Customization   `json:"customization"`
}

// PersonalInfo captures identity and contact details.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Summary   string `json:"summary"`
	Photo     string `json:"photo"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Website   string `json:"website"`
}

// FullName joins first and last name, trimming stray whitespace.
func (p PersonalInfo) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Experience represents one work history entry.
type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// DisplayEndDate returns the end date to render. A current position
// always renders as "Présent" regardless of the stored end date.
func (e Experience) DisplayEndDate() string {
	if e.Current {
		return "Présent"
	}
	return e.EndDate
}

// Education represents one education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Skill is a named skill with a 1-5 proficiency level.
type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

// ClampedLevel returns the skill level forced into the 1-5 range.
func (s Skill) ClampedLevel() int {
	if s.Level < 1 {
		return 1
	}
	if s.Level > 5 {
		return 5
	}
	return s.Level
}

// Language levels recognized by the renderer and the DOCX assembler.
const (
	LevelBeginner     = "Débutant"
	LevelIntermediate = "Intermédiaire"
	LevelAdvanced     = "Avancé"
	LevelBilingual    = "Bilingue"
	LevelNative       = "Natif"
)

// Language is a spoken language with a categorical level.
type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Certification is a loosely-typed certification record.
type Certification struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Project is a loosely-typed project record.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Interest is a free-form interest entry.
type Interest struct {
	Name string `json:"name"`
}

// Customization carries the visual options applied by every template.
type Customization struct {
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	FontFamily     string  `json:"fontFamily"`
	FontSize       int     `json:"fontSize"`
	Spacing        float64 `json:"spacing"`
}

// DefaultCustomization returns the customization applied when the wizard
// supplies none.
func DefaultCustomization() Customization {
	return Customization{
		PrimaryColor:   "#2563EB",
		SecondaryColor: "#64748B",
		FontFamily:     "Helvetica, Arial, sans-serif",
		FontSize:       14,
		Spacing:        1.0,
	}
}

var validLanguageLevels = map[string]struct{}{
	LevelBeginner:     {},
	LevelIntermediate: {},
	LevelAdvanced:     {},
	LevelBilingual:    {},
	LevelNative:       {},
}

// Validate enforces the rules for a "complete" CV: name, email and phone
// present, and language levels drawn from the known set. The export
// pipeline itself accepts partial data; this is the persistence-time check.
func (c CV) Validate() error {
	if c.PersonalInfo.FullName() == "" {
		return errors.New("personalInfo.firstName or lastName is required")
	}
	if strings.TrimSpace(c.PersonalInfo.Email) == "" {
		return errors.New("personalInfo.email is required")
	}
	if strings.TrimSpace(c.PersonalInfo.Phone) == "" {
		return errors.New("personalInfo.phone is required")
	}
	for i, lang := range c.Languages {
		if strings.TrimSpace(lang.Level) == "" {
			continue
		}
		if _, ok := validLanguageLevels[lang.Level]; !ok {
			return fmt.Errorf("languages[%d].level must be one of Débutant, Intermédiaire, Avancé, Bilingue, Natif", i)
		}
	}
	return nil
}
