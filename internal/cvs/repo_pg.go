package cvs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"businessconnect-backend/cvdoc/model"
)

// PGRepo implements CVsRepo using Postgres. The canonical document is
// stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO cvs (
    id,
    user_id,
    title,
    template,
    data,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	data, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.Title,
		rec.Template,
		data,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Record, error) {
	const query = `
SELECT id, user_id, title, template, data, created_at, updated_at
FROM cvs
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`

	var rec Record
	var data []byte
	err := r.DB.QueryRowContext(ctx, query, userID, id).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.Template,
		&data,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return Record{}, err
	}
	model.Coerce(&rec.Data)
	return rec, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, title, template, data, created_at, updated_at
FROM cvs
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY updated_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var data []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Title,
			&rec.Template,
			&data,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &rec.Data); err != nil {
			return nil, err
		}
		model.Coerce(&rec.Data)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, rec Record) error {
	const query = `
UPDATE cvs
SET title = $1, template = $2, data = $3, updated_at = $4
WHERE user_id = $5 AND id = $6 AND deleted_at IS NULL`

	data, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, rec.Title, rec.Template, data, rec.UpdatedAt, rec.UserID, rec.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	const query = `
UPDATE cvs
SET deleted_at = now()
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClaimGuest reassigns every CV owned by a guest identity to the
// authenticated account.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE cvs
SET user_id = $1
WHERE user_id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

var _ CVsRepo = (*PGRepo)(nil)
