package object

import (
	"context"
	"io"
)

// ObjectStore persists export artifacts (PDF and DOCX files) keyed by
// a hashed per-user prefix. Implementations: local disk and S3.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
