package cvs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of CVsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Record // id -> record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Record)}
}

func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.ID] = rec
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok || rec.UserID != userID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Record, 0)
	for _, rec := range r.data {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []Record{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) Update(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[rec.ID]
	if !ok || existing.UserID != rec.UserID {
		return ErrNotFound
	}
	r.data[rec.ID] = rec
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.data[id]
	if !ok || rec.UserID != userID {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// ClaimGuest reassigns every CV owned by a guest identity to the
// authenticated account. Returns the number of records moved.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, rec := range r.data {
		if rec.UserID == guestUserID {
			rec.UserID = authedUserID
			r.data[id] = rec
			count++
		}
	}
	return count, nil
}

var _ CVsRepo = (*MemoryRepo)(nil)
