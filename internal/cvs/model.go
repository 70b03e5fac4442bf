package cvs

import (
	"time"

	"businessconnect-backend/cvdoc/model"
)

// Record is a persisted CV owned by a user. Data holds the normalized
// canonical document; the raw client payload is not retained.
type Record struct {
	ID        string
	UserID    string
	Title     string
	Template  string
	Data      model.CV
	CreatedAt time.Time
	UpdatedAt time.Time
}
