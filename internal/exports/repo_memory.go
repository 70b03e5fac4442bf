package exports

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of ExportsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Export
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Export)}
}

func (r *MemoryRepo) Create(ctx context.Context, exp Export) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[exp.ID] = exp
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Export, error) {
	if err := ctx.Err(); err != nil {
		return Export{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	exp, ok := r.data[id]
	if !ok || exp.UserID != userID {
		return Export{}, ErrNotFound
	}
	return exp, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Export, 0)
	for _, exp := range r.data {
		if exp.UserID == userID {
			out = append(out, exp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []Export{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) MarkProcessing(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.data[id]
	if !ok || exp.Status != StatusPending {
		return ErrNotFound
	}
	exp.Status = StatusProcessing
	r.data[id] = exp
	return nil
}

func (r *MemoryRepo) Complete(ctx context.Context, id, fileName, mimeType, storageKey string, sizeBytes int64, pages int, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	exp.Status = StatusCompleted
	exp.FileName = fileName
	exp.MIMEType = mimeType
	exp.StorageKey = storageKey
	exp.SizeBytes = sizeBytes
	exp.Pages = pages
	exp.Error = ""
	exp.CompletedAt = &at
	r.data[id] = exp
	return nil
}

func (r *MemoryRepo) Fail(ctx context.Context, id, message string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	exp.Status = StatusFailed
	exp.Error = message
	exp.CompletedAt = &at
	r.data[id] = exp
	return nil
}

// ClaimGuest reassigns every export owned by a guest identity to the
// authenticated account.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, exp := range r.data {
		if exp.UserID == guestUserID {
			exp.UserID = authedUserID
			r.data[id] = exp
			count++
		}
	}
	return count, nil
}

var _ ExportsRepo = (*MemoryRepo)(nil)
