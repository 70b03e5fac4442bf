package subscriptions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of SubscriptionsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Subscription
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Subscription)}
}

func (r *MemoryRepo) Create(ctx context.Context, sub Subscription) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[sub.ID] = sub
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return Subscription{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.data[id]
	if !ok || sub.UserID != userID {
		return Subscription{}, ErrNotFound
	}
	return sub, nil
}

func (r *MemoryRepo) GetByPaymentRef(ctx context.Context, ref string) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return Subscription{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.data {
		if sub.PaymentRef != "" && sub.PaymentRef == ref {
			return sub, nil
		}
	}
	return Subscription{}, ErrNotFound
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Subscription
	for _, sub := range r.data {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, sub Subscription) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[sub.ID]; !ok {
		return ErrNotFound
	}
	r.data[sub.ID] = sub
	return nil
}

var _ SubscriptionsRepo = (*MemoryRepo)(nil)
