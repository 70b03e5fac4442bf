package formations

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// PGRepo implements FormationsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const formationColumns = `id, title, provider, category, description, duration_hours, price_fcfa, start_date, location, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, f Formation) error {
	const query = `
INSERT INTO formations (
    id,
    title,
    provider,
    category,
    description,
    duration_hours,
    price_fcfa,
    start_date,
    location,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var startDate sql.NullTime
	if f.StartDate != nil {
		startDate = sql.NullTime{Time: *f.StartDate, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		f.ID,
		f.Title,
		f.Provider,
		f.Category,
		f.Description,
		f.DurationHours,
		f.PriceFCFA,
		startDate,
		f.Location,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Formation, error) {
	const query = `
SELECT ` + formationColumns + `
FROM formations
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	f, err := scanFormation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Formation{}, ErrNotFound
		}
		return Formation{}, err
	}
	return f, nil
}

func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Formation, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
SELECT ` + formationColumns + `
FROM formations
WHERE deleted_at IS NULL`
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += ` AND lower(category) = lower($` + strconv.Itoa(len(args)) + `)`
	}
	if filter.Query != "" {
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (lower(title) LIKE $` + n + ` OR lower(provider) LIKE $` + n + `)`
	}

	args = append(args, limit)
	query += `
ORDER BY created_at DESC
LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Formation
	for rows.Next() {
		f, err := scanFormation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, f Formation) error {
	const query = `
UPDATE formations
SET title = $1,
    provider = $2,
    category = $3,
    description = $4,
    duration_hours = $5,
    price_fcfa = $6,
    start_date = $7,
    location = $8,
    updated_at = $9
WHERE id = $10 AND deleted_at IS NULL`

	var startDate sql.NullTime
	if f.StartDate != nil {
		startDate = sql.NullTime{Time: *f.StartDate, Valid: true}
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		f.Title,
		f.Provider,
		f.Category,
		f.Description,
		f.DurationHours,
		f.PriceFCFA,
		startDate,
		f.Location,
		f.UpdatedAt,
		f.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `
UPDATE formations
SET deleted_at = now()
WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFormation(row rowScanner) (Formation, error) {
	var f Formation
	var startDate sql.NullTime
	var location sql.NullString
	if err := row.Scan(
		&f.ID,
		&f.Title,
		&f.Provider,
		&f.Category,
		&f.Description,
		&f.DurationHours,
		&f.PriceFCFA,
		&startDate,
		&location,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return Formation{}, err
	}
	if startDate.Valid {
		t := startDate.Time
		f.StartDate = &t
	}
	if location.Valid {
		f.Location = location.String
	}
	return f, nil
}

var _ FormationsRepo = (*PGRepo)(nil)
