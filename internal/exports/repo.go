package exports

import (
	"context"
	"time"
)

// ExportsRepo defines persistence operations for export jobs.
type ExportsRepo interface {
	Create(ctx context.Context, exp Export) error
	GetByID(ctx context.Context, userID, id string) (Export, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Export, error)
	// MarkProcessing transitions pending -> processing. It reports
	// ErrNotFound when the export is absent or already claimed.
	MarkProcessing(ctx context.Context, id string) error
	Complete(ctx context.Context, id, fileName, mimeType, storageKey string, sizeBytes int64, pages int, at time.Time) error
	Fail(ctx context.Context, id, message string, at time.Time) error
}
