package formations

import "time"

// Formation is a published training course.
type Formation struct {
	ID            string
	Title         string
	Provider      string
	Category      string
	Description   string
	DurationHours int
	PriceFCFA     int64
	StartDate     *time.Time
	Location      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter narrows course listings.
type Filter struct {
	Category string
	Query    string
	Limit    int
	Offset   int
}
