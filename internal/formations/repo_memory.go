package formations

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of FormationsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Formation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Formation)}
}

func (r *MemoryRepo) Create(ctx context.Context, f Formation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[f.ID] = f
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Formation, error) {
	if err := ctx.Err(); err != nil {
		return Formation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.data[id]
	if !ok {
		return Formation{}, ErrNotFound
	}
	return f, nil
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Formation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Formation, 0, len(r.data))
	for _, f := range r.data {
		if filter.Category != "" && !strings.EqualFold(f.Category, filter.Category) {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(f.Title), q) &&
				!strings.Contains(strings.ToLower(f.Provider), q) {
				continue
			}
		}
		out = append(out, f)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []Formation{}, nil
	}
	end := len(out)
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) Update(ctx context.Context, f Formation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[f.ID]; !ok {
		return ErrNotFound
	}
	r.data[f.ID] = f
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

var _ FormationsRepo = (*MemoryRepo)(nil)
