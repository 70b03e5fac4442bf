package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for job offers.
type Service struct {
	Repo JobsRepo
}

// Input carries the client-supplied fields of an offer.
type Input struct {
	Title        string
	Company      string
	Location     string
	Sector       string
	ContractType string
	Description  string
	Requirements []string
	Salary       string
	ExpiresAt    *time.Time
}

func (in *Input) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Company == "" {
		return fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	if !ValidContractType(in.ContractType) {
		return fmt.Errorf("%w: unknown contract type %q", ErrInvalidInput, in.ContractType)
	}
	return nil
}

// Create validates and stores a new offer.
func (s *Service) Create(ctx context.Context, in Input) (Job, error) {
	if err := in.validate(); err != nil {
		return Job{}, err
	}

	now := time.Now().UTC()
	job := Job{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Company:      in.Company,
		Location:     strings.TrimSpace(in.Location),
		Sector:       strings.TrimSpace(in.Sector),
		ContractType: in.ContractType,
		Description:  in.Description,
		Requirements: in.Requirements,
		Salary:       strings.TrimSpace(in.Salary),
		ExpiresAt:    in.ExpiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Get returns a single offer.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	if id == "" {
		return Job{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns offers matching the filter, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]Job, error) {
	return s.Repo.List(ctx, f)
}

// Update replaces the mutable fields of an offer.
func (s *Service) Update(ctx context.Context, id string, in Input) (Job, error) {
	if id == "" {
		return Job{}, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return Job{}, err
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}

	existing.Title = in.Title
	existing.Company = in.Company
	existing.Location = strings.TrimSpace(in.Location)
	existing.Sector = strings.TrimSpace(in.Sector)
	existing.ContractType = in.ContractType
	existing.Description = in.Description
	existing.Requirements = in.Requirements
	existing.Salary = strings.TrimSpace(in.Salary)
	existing.ExpiresAt = in.ExpiresAt
	existing.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, existing); err != nil {
		return Job{}, err
	}
	return existing, nil
}

// Delete removes an offer.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}
