// Package usecase holds the candidate and skill business logic.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"candidate_backend/internal/feature/candidates/domain/entity"
	"candidate_backend/internal/shared/pagination"
)

// CandidateRepository abstracts the persistence layer for candidates.
type CandidateRepository interface {
	// Create persists a new candidate. A unique constraint failure yields ErrCandidateConflict.
	Create(ctx context.Context, c *entity.Candidate) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	// FindByID loads the candidate with its skills and experience, or ErrCandidateNotFound.
	FindByID(ctx context.Context, id string) (*entity.Candidate, error)
	// List returns one page of candidates matching the filter and the total match count.
	List(ctx context.Context, filter entity.CandidateFilter, p pagination.Params) ([]entity.Candidate, int64, error)
	// Delete removes the candidate and everything attached to it, or returns ErrCandidateNotFound.
	Delete(ctx context.Context, id string) error
	AddExperience(ctx context.Context, e *entity.Experience) error
}

// NewCandidate is the input of CandidateUsecase.Create.
type NewCandidate struct {
	Name  string
	Email string
	Phone string
}

// NewExperience is the input of CandidateUsecase.AddExperience.
type NewExperience struct {
	JobTitle  string
	Company   string
	StartDate time.Time
	EndDate   *time.Time
}

type candidateUsecase struct {
	candidates CandidateRepository
}

// NewCandidateUsecase creates a new candidateUsecase.
func NewCandidateUsecase(candidates CandidateRepository) *candidateUsecase {
	return &candidateUsecase{candidates: candidates}
}

// Create registers a candidate. The email is checked before the phone number,
// so a candidate colliding on both reports ErrCandidateEmailInUse.
func (u *candidateUsecase) Create(ctx context.Context, in NewCandidate) (*entity.Candidate, error) {
	taken, err := u.candidates.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrCandidateEmailInUse
	}

	taken, err = u.candidates.ExistsByPhone(ctx, in.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}
	if taken {
		return nil, ErrCandidatePhoneInUse
	}

	c := &entity.Candidate{
		ID:    uuid.NewString(),
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}
	if err := u.candidates.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the candidate with its skills and experience.
func (u *candidateUsecase) Get(ctx context.Context, id string) (*entity.Candidate, error) {
	return u.candidates.FindByID(ctx, id)
}

// List returns one page of candidates matching filter.
func (u *candidateUsecase) List(ctx context.Context, filter entity.CandidateFilter, p pagination.Params) (pagination.Page[entity.Candidate], error) {
	p = p.Normalize()
	items, total, err := u.candidates.List(ctx, filter, p)
	if err != nil {
		return pagination.Page[entity.Candidate]{}, fmt.Errorf("failed to list candidates: %w", err)
	}
	return pagination.New(items, total, p), nil
}

// Delete removes the candidate together with its skills and experience.
func (u *candidateUsecase) Delete(ctx context.Context, id string) error {
	return u.candidates.Delete(ctx, id)
}

// AddExperience attaches an experience entry to an existing candidate.
func (u *candidateUsecase) AddExperience(ctx context.Context, candidateID string, in NewExperience) (*entity.Experience, error) {
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if _, err := u.candidates.FindByID(ctx, candidateID); err != nil {
		return nil, err
	}

	e := &entity.Experience{
		JobTitle:    in.JobTitle,
		Company:     in.Company,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CandidateID: candidateID,
	}
	if err := u.candidates.AddExperience(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to add experience: %w", err)
	}
	return e, nil
}
