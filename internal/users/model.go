package users

import "time"

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	GivenName  string    `json:"givenName"`
	FamilyName string    `json:"familyName"`
	PictureURL string    `json:"pictureUrl"`
	Phone      string    `json:"phone"`
	Location   string    `json:"location"`
	Headline   string    `json:"headline"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Profile carries the fields a user may edit themselves. Identity
// fields come from OAuth and stay read-only.
type Profile struct {
	FullName string
	Phone    string
	Location string
	Headline string
}
