package exports

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements ExportsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const exportColumns = `id, user_id, cv_id, format, template, status, file_name, mime_type, storage_key, size_bytes, pages, error, created_at, completed_at`

func (r *PGRepo) Create(ctx context.Context, exp Export) error {
	const query = `
INSERT INTO exports (
    id,
    user_id,
    cv_id,
    format,
    template,
    status,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		exp.ID,
		exp.UserID,
		exp.CVID,
		exp.Format,
		exp.Template,
		exp.Status,
		exp.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Export, error) {
	const query = `
SELECT ` + exportColumns + `
FROM exports
WHERE user_id = $1 AND id = $2
LIMIT 1`
	exp, err := scanExport(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Export{}, ErrNotFound
		}
		return Export{}, err
	}
	return exp, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
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
SELECT ` + exportColumns + `
FROM exports
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Export
	for rows.Next() {
		exp, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

// MarkProcessing claims a pending export. The status guard makes the
// claim atomic across competing workers.
func (r *PGRepo) MarkProcessing(ctx context.Context, id string) error {
	const query = `
UPDATE exports
SET status = $1
WHERE id = $2 AND status = $3`
	res, err := r.DB.ExecContext(ctx, query, StatusProcessing, id, StatusPending)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Complete(ctx context.Context, id, fileName, mimeType, storageKey string, sizeBytes int64, pages int, at time.Time) error {
	const query = `
UPDATE exports
SET status = $1,
    file_name = $2,
    mime_type = $3,
    storage_key = $4,
    size_bytes = $5,
    pages = $6,
    error = NULL,
    completed_at = $7
WHERE id = $8`
	res, err := r.DB.ExecContext(ctx, query, StatusCompleted, fileName, mimeType, storageKey, sizeBytes, pages, at, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Fail(ctx context.Context, id, message string, at time.Time) error {
	const query = `
UPDATE exports
SET status = $1, error = $2, completed_at = $3
WHERE id = $4`
	res, err := r.DB.ExecContext(ctx, query, StatusFailed, message, at, id)
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

func scanExport(row rowScanner) (Export, error) {
	var exp Export
	var fileName, mimeType, storageKey, errMsg sql.NullString
	var sizeBytes sql.NullInt64
	var pages sql.NullInt64
	var completedAt sql.NullTime
	if err := row.Scan(
		&exp.ID,
		&exp.UserID,
		&exp.CVID,
		&exp.Format,
		&exp.Template,
		&exp.Status,
		&fileName,
		&mimeType,
		&storageKey,
		&sizeBytes,
		&pages,
		&errMsg,
		&exp.CreatedAt,
		&completedAt,
	); err != nil {
		return Export{}, err
	}
	if fileName.Valid {
		exp.FileName = fileName.String
	}
	if mimeType.Valid {
		exp.MIMEType = mimeType.String
	}
	if storageKey.Valid {
		exp.StorageKey = storageKey.String
	}
	if sizeBytes.Valid {
		exp.SizeBytes = sizeBytes.Int64
	}
	if pages.Valid {
		exp.Pages = int(pages.Int64)
	}
	if errMsg.Valid {
		exp.Error = errMsg.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		exp.CompletedAt = &t
	}
	return exp, nil
}

// ClaimGuest reassigns every export owned by a guest identity to the
// authenticated account.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE exports
SET user_id = $1
WHERE user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

var _ ExportsRepo = (*PGRepo)(nil)
