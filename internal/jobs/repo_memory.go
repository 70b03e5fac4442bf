package jobs

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of JobsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Job)}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.ID] = job
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	jobs := make([]Job, 0, len(r.data))
	for _, job := range r.data {
		if matches(job, f) {
			jobs = append(jobs, job)
		}
	}
	r.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(jobs) {
		return []Job{}, nil
	}
	end := len(jobs)
	if f.Limit > 0 && offset+f.Limit < end {
		end = offset + f.Limit
	}
	return jobs[offset:end], nil
}

func (r *MemoryRepo) Update(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[job.ID]; !ok {
		return ErrNotFound
	}
	r.data[job.ID] = job
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

func matches(job Job, f Filter) bool {
	if f.Sector != "" && !strings.EqualFold(job.Sector, f.Sector) {
		return false
	}
	if f.Location != "" && !strings.EqualFold(job.Location, f.Location) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(job.Title), q) &&
			!strings.Contains(strings.ToLower(job.Company), q) &&
			!strings.Contains(strings.ToLower(job.Description), q) {
			return false
		}
	}
	return true
}

var _ JobsRepo = (*MemoryRepo)(nil)
