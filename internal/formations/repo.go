package formations

import "context"

// FormationsRepo defines persistence operations for training courses.
type FormationsRepo interface {
	Create(ctx context.Context, f Formation) error
	GetByID(ctx context.Context, id string) (Formation, error)
	List(ctx context.Context, f Filter) ([]Formation, error)
	Update(ctx context.Context, f Formation) error
	Delete(ctx context.Context, id string) error
}
