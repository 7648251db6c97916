package usecase

import (
	"context"
	"fmt"

	"candidate_backend/internal/feature/candidates/domain/entity"
	"candidate_backend/internal/shared/pagination"
)

// SkillRepository abstracts the persistence layer for skills.
type SkillRepository interface {
	Create(ctx context.Context, s *entity.Skill) error
	// FindByID returns ErrSkillNotFound when no skill has the id.
	FindByID(ctx context.Context, id uint) (*entity.Skill, error)
	// ListByCandidate returns one page of the candidate's skills in id order and their total.
	ListByCandidate(ctx context.Context, candidateID string, p pagination.Params) ([]entity.Skill, int64, error)
	// Update applies patch to the skill and returns the stored result, or ErrSkillNotFound.
	Update(ctx context.Context, id uint, patch entity.SkillPatch) (*entity.Skill, error)
	// Delete returns ErrSkillNotFound when no skill has the id.
	Delete(ctx context.Context, id uint) error
}

// CandidateFinder looks up candidates by id.
type CandidateFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Candidate, error)
}

type skillUsecase struct {
	skills     SkillRepository
	candidates CandidateFinder
}

// NewSkillUsecase creates a new skillUsecase.
func NewSkillUsecase(skills SkillRepository, candidates CandidateFinder) *skillUsecase {
	return &skillUsecase{skills: skills, candidates: candidates}
}

// Create adds a skill to an existing candidate.
func (u *skillUsecase) Create(ctx context.Context, candidateID, name string) (*entity.Skill, error) {
	if _, err := u.candidates.FindByID(ctx, candidateID); err != nil {
		return nil, err
	}
	s := &entity.Skill{Name: name, CandidateID: candidateID}
	if err := u.skills.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return s, nil
}

// Get returns a single skill.
func (u *skillUsecase) Get(ctx context.Context, id uint) (*entity.Skill, error) {
	return u.skills.FindByID(ctx, id)
}

// ListByCandidate returns one page of the candidate's skills.
// An unknown candidate yields ErrCandidateNotFound rather than an empty page.
func (u *skillUsecase) ListByCandidate(ctx context.Context, candidateID string, p pagination.Params) (pagination.Page[entity.Skill], error) {
	if _, err := u.candidates.FindByID(ctx, candidateID); err != nil {
		return pagination.Page[entity.Skill]{}, err
	}
	p = p.Normalize()
	items, total, err := u.skills.ListByCandidate(ctx, candidateID, p)
	if err != nil {
		return pagination.Page[entity.Skill]{}, fmt.Errorf("failed to list skills: %w", err)
	}
	return pagination.New(items, total, p), nil
}

// Update applies patch. An empty patch returns the skill unchanged.
func (u *skillUsecase) Update(ctx context.Context, id uint, patch entity.SkillPatch) (*entity.Skill, error) {
	if patch.IsEmpty() {
		return u.skills.FindByID(ctx, id)
	}
	return u.skills.Update(ctx, id, patch)
}

// Delete removes a skill.
func (u *skillUsecase) Delete(ctx context.Context, id uint) error {
	return u.skills.Delete(ctx, id)
}
