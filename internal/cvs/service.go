package cvs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"businessconnect-backend/cvdoc/model"
)

// Service contains business logic for CVs.
type Service struct {
	Repo CVsRepo
}

// Save validates a raw wizard payload, normalizes it to the canonical
// document and stores it under the user.
func (s *Service) Save(ctx context.Context, userID string, raw []byte) (Record, error) {
	if userID == "" {
		return Record{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}

	cv, err := s.normalize(raw)
	if err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	rec := Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     titleFor(cv),
		Template:  cv.Template,
		Data:      cv,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Get returns a user's CV.
func (s *Service) Get(ctx context.Context, userID, id string) (Record, error) {
	if userID == "" || id == "" {
		return Record{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's CVs, most recently edited first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Replace overwrites a stored CV with a new payload.
func (s *Service) Replace(ctx context.Context, userID, id string, raw []byte) (Record, error) {
	if userID == "" || id == "" {
		return Record{}, ErrInvalidInput
	}

	cv, err := s.normalize(raw)
	if err != nil {
		return Record{}, err
	}

	existing, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return Record{}, err
	}

	existing.Title = titleFor(cv)
	existing.Template = cv.Template
	existing.Data = cv
	existing.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, existing); err != nil {
		return Record{}, err
	}
	return existing, nil
}

// Delete removes a user's CV.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, id)
}

func (s *Service) normalize(raw []byte) (model.CV, error) {
	if err := ValidatePayload(raw); err != nil {
		return model.CV{}, err
	}
	cv, err := model.Decode(raw)
	if err != nil {
		return model.CV{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return cv, nil
}

func titleFor(cv model.CV) string {
	if name := strings.TrimSpace(cv.PersonalInfo.FullName()); name != "" {
		return "CV " + name
	}
	return "CV sans titre"
}
