package formations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for training courses.
type Service struct {
	Repo FormationsRepo
}

// Input carries the client-supplied fields of a course.
type Input struct {
	Title         string
	Provider      string
	Category      string
	Description   string
	DurationHours int
	PriceFCFA     int64
	StartDate     *time.Time
	Location      string
}

func (in *Input) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Provider = strings.TrimSpace(in.Provider)
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Provider == "" {
		return fmt.Errorf("%w: provider is required", ErrInvalidInput)
	}
	if in.DurationHours < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrInvalidInput)
	}
	if in.PriceFCFA < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (Formation, error) {
	if err := in.validate(); err != nil {
		return Formation{}, err
	}

	now := time.Now().UTC()
	f := Formation{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Provider:      in.Provider,
		Category:      strings.TrimSpace(in.Category),
		Description:   in.Description,
		DurationHours: in.DurationHours,
		PriceFCFA:     in.PriceFCFA,
		StartDate:     in.StartDate,
		Location:      strings.TrimSpace(in.Location),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, f); err != nil {
		return Formation{}, err
	}
	return f, nil
}

func (s *Service) Get(ctx context.Context, id string) (Formation, error) {
	if id == "" {
		return Formation{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Formation, error) {
	return s.Repo.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Formation, error) {
	if id == "" {
		return Formation{}, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return Formation{}, err
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Formation{}, err
	}

	existing.Title = in.Title
	existing.Provider = in.Provider
	existing.Category = strings.TrimSpace(in.Category)
	existing.Description = in.Description
	existing.DurationHours = in.DurationHours
	existing.PriceFCFA = in.PriceFCFA
	existing.StartDate = in.StartDate
	existing.Location = strings.TrimSpace(in.Location)
	existing.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, existing); err != nil {
		return Formation{}, err
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}
