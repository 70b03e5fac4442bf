package jobs

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// PGRepo implements JobsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, title, company, location, sector, contract_type, description, requirements, salary, expires_at, created_at, updated_at`

// Create inserts a new job offer.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (
    id,
    title,
    company,
    location,
    sector,
    contract_type,
    description,
    requirements,
    salary,
    expires_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var expiresAt sql.NullTime
	if job.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *job.ExpiresAt, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Company,
		job.Location,
		job.Sector,
		job.ContractType,
		job.Description,
		strings.Join(job.Requirements, "\n"),
		job.Salary,
		expiresAt,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetByID fetches one job offer.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Job, error) {
	const query = `
SELECT ` + jobColumns + `
FROM jobs
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// List returns job offers newest-first, honoring the filter.
func (r *PGRepo) List(ctx context.Context, f Filter) ([]Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
SELECT ` + jobColumns + `
FROM jobs
WHERE deleted_at IS NULL`
	args := []any{}

	if f.Sector != "" {
		args = append(args, f.Sector)
		query += ` AND lower(sector) = lower($` + strconv.Itoa(len(args)) + `)`
	}
	if f.Location != "" {
		args = append(args, f.Location)
		query += ` AND lower(location) = lower($` + strconv.Itoa(len(args)) + `)`
	}
	if f.Query != "" {
		args = append(args, "%"+strings.ToLower(f.Query)+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (lower(title) LIKE $` + n + ` OR lower(company) LIKE $` + n + ` OR lower(description) LIKE $` + n + `)`
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

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// Update overwrites the mutable fields of an existing offer.
func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs
SET title = $1,
    company = $2,
    location = $3,
    sector = $4,
    contract_type = $5,
    description = $6,
    requirements = $7,
    salary = $8,
    expires_at = $9,
    updated_at = $10
WHERE id = $11 AND deleted_at IS NULL`

	var expiresAt sql.NullTime
	if job.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *job.ExpiresAt, Valid: true}
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		job.Title,
		job.Company,
		job.Location,
		job.Sector,
		job.ContractType,
		job.Description,
		strings.Join(job.Requirements, "\n"),
		job.Salary,
		expiresAt,
		job.UpdatedAt,
		job.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft-deletes an offer.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `
UPDATE jobs
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

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var requirements sql.NullString
	var salary sql.NullString
	var expiresAt sql.NullTime
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Sector,
		&job.ContractType,
		&job.Description,
		&requirements,
		&salary,
		&expiresAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return Job{}, err
	}
	if requirements.Valid && requirements.String != "" {
		job.Requirements = strings.Split(requirements.String, "\n")
	}
	if salary.Valid {
		job.Salary = salary.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		job.ExpiresAt = &t
	}
	return job, nil
}

var _ JobsRepo = (*PGRepo)(nil)
