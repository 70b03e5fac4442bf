package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, full_name, given_name, family_name, picture_url, phone, location, headline, created_at, updated_at`

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, given_name, family_name, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  given_name = EXCLUDED.given_name,
  family_name = EXCLUDED.family_name,
  picture_url = EXCLUDED.picture_url,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.FullName),
		nullableString(user.GivenName),
		nullableString(user.FamilyName),
		nullableString(user.PictureURL),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) UpdateProfile(ctx context.Context, userID string, profile Profile) (User, error) {
	query := `
UPDATE users
SET full_name = COALESCE($1, full_name),
    phone = $2,
    location = $3,
    headline = $4,
    updated_at = now()
WHERE id = $5
RETURNING ` + userColumns
	return scanUser(r.DB.QueryRowContext(ctx, query,
		nullableString(profile.FullName),
		nullableString(profile.Phone),
		nullableString(profile.Location),
		nullableString(profile.Headline),
		userID,
	))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user       User
		fullName   sql.NullString
		givenName  sql.NullString
		familyName sql.NullString
		pictureURL sql.NullString
		phone      sql.NullString
		location   sql.NullString
		headline   sql.NullString
		updatedAt  sql.NullTime
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&fullName,
		&givenName,
		&familyName,
		&pictureURL,
		&phone,
		&location,
		&headline,
		&user.CreatedAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	user.FullName = fullName.String
	user.GivenName = givenName.String
	user.FamilyName = familyName.String
	user.PictureURL = pictureURL.String
	user.Phone = phone.String
	user.Location = location.String
	user.Headline = headline.String
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
