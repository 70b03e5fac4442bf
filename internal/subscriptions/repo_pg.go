package subscriptions

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements SubscriptionsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const subscriptionColumns = `id, user_id, plan, status, amount_fcfa, payment_ref, starts_at, expires_at, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, sub Subscription) error {
	const query = `
INSERT INTO subscriptions (
    id,
    user_id,
    plan,
    status,
    amount_fcfa,
    payment_ref,
    starts_at,
    expires_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		sub.ID,
		sub.UserID,
		sub.Plan,
		sub.Status,
		sub.AmountFCFA,
		nullString(sub.PaymentRef),
		nullTime(sub.StartsAt),
		nullTime(sub.ExpiresAt),
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND user_id = $2`
	return scanSubscription(r.DB.QueryRowContext(ctx, query, id, userID))
}

func (r *PGRepo) GetByPaymentRef(ctx context.Context, ref string) (Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE payment_ref = $1`
	return scanSubscription(r.DB.QueryRowContext(ctx, query, ref))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, sub Subscription) error {
	const query = `
UPDATE subscriptions
SET status = $1,
    payment_ref = $2,
    starts_at = $3,
    expires_at = $4,
    updated_at = $5
WHERE id = $6`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		sub.Status,
		nullString(sub.PaymentRef),
		nullTime(sub.StartsAt),
		nullTime(sub.ExpiresAt),
		sub.UpdatedAt,
		sub.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (Subscription, error) {
	var (
		sub        Subscription
		paymentRef sql.NullString
		startsAt   sql.NullTime
		expiresAt  sql.NullTime
	)
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Plan,
		&sub.Status,
		&sub.AmountFCFA,
		&paymentRef,
		&startsAt,
		&expiresAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Subscription{}, ErrNotFound
	}
	if err != nil {
		return Subscription{}, err
	}
	sub.PaymentRef = paymentRef.String
	if startsAt.Valid {
		t := startsAt.Time
		sub.StartsAt = &t
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		sub.ExpiresAt = &t
	}
	return sub, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ SubscriptionsRepo = (*PGRepo)(nil)
