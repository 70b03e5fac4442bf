package jobs

import "time"

// Job is a published job offer.
type Job struct {
	ID           string
	Title        string
	Company      string
	Location     string
	Sector       string
	ContractType string
	Description  string
	Requirements []string
	Salary       string
	ExpiresAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter narrows job listings. Zero values mean "no constraint".
type Filter struct {
	Sector   string
	Location string
	Query    string
	Limit    int
	Offset   int
}

var contractTypes = map[string]bool{
	"CDI":        true,
	"CDD":        true,
	"Stage":      true,
	"Freelance":  true,
	"Alternance": true,
}

// ValidContractType reports whether t is one of the published contract
// types. Empty is allowed; offers may omit it.
func ValidContractType(t string) bool {
	return t == "" || contractTypes[t]
}
