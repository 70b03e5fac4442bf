package render

import (
	"fmt"
	"html/template"
	"strings"

	"businessconnect-backend/cvdoc/model"
)

// templateFuncs are shared by every built-in template.
var templateFuncs = template.FuncMap{
	"fullName":     func(p model.PersonalInfo) string { return p.FullName() },
	"cityLine":     cityLine,
	"dateRange":    dateRange,
	"levelPercent": levelPercent,
	"spacing":      func(s float64) string { return fmt.Sprintf("%.2f", 1.4*s) },
}

func cityLine(p model.PersonalInfo) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Address, p.City, p.Country} {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}

func dateRange(start, end string) string {
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
		return start + " – " + end
	}
}

func levelPercent(s model.Skill) int {
	return s.ClampedLevel() * 20
}
