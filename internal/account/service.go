package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"businessconnect-backend/internal/cvs"
	"businessconnect-backend/internal/exports"
)

type Service struct {
	CVsRepo     cvs.CVsRepo
	ExportsRepo exports.ExportsRepo
}

type ClaimResult struct {
	MigratedCVs     int `json:"migratedCvs"`
	MigratedExports int `json:"migratedExports"`
}

func NewService(cvsRepo cvs.CVsRepo, exportsRepo exports.ExportsRepo) *Service {
	return &Service{CVsRepo: cvsRepo, ExportsRepo: exportsRepo}
}

// ClaimGuest moves CVs and exports created under a guest identity to
// the authenticated account. When both repos share a database the move
// runs in one transaction.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}

	if cvPG, ok := s.CVsRepo.(*cvs.PGRepo); ok && cvPG != nil && cvPG.DB != nil {
		if expPG, ok := s.ExportsRepo.(*exports.PGRepo); ok && expPG != nil && expPG.DB != nil {
			return claimWithTx(ctx, cvPG.DB, guestUserID, authedUserID)
		}
	}

	cvCount, err := claimCVs(ctx, s.CVsRepo, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	exportCount, err := claimExports(ctx, s.ExportsRepo, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedCVs: cvCount, MigratedExports: exportCount}, nil
}

func claimWithTx(ctx context.Context, db *sql.DB, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	cvRes, err := tx.ExecContext(ctx, `UPDATE cvs SET user_id = $1 WHERE user_id = $2 AND deleted_at IS NULL`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	cvCount, _ := cvRes.RowsAffected()

	expRes, err := tx.ExecContext(ctx, `UPDATE exports SET user_id = $1 WHERE user_id = $2`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	exportCount, _ := expRes.RowsAffected()

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedCVs: int(cvCount), MigratedExports: int(exportCount)}, nil
}

type guestClaimer interface {
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}

func claimCVs(ctx context.Context, repo cvs.CVsRepo, guestUserID, authedUserID string) (int, error) {
	if claimer, ok := repo.(guestClaimer); ok {
		return claimer.ClaimGuest(ctx, guestUserID, authedUserID)
	}
	return 0, errors.New("cvs repo does not support claim")
}

func claimExports(ctx context.Context, repo exports.ExportsRepo, guestUserID, authedUserID string) (int, error) {
	if claimer, ok := repo.(guestClaimer); ok {
		return claimer.ClaimGuest(ctx, guestUserID, authedUserID)
	}
	return 0, errors.New("exports repo does not support claim")
}
