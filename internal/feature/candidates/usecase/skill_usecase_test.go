package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate_backend/internal/feature/candidates/domain/entity"
	"candidate_backend/internal/shared/pagination"
)

// mockSkillRepository is a func-field mock of SkillRepository.
type mockSkillRepository struct {
	CreateFunc          func(ctx context.Context, s *entity.Skill) error
	FindByIDFunc        func(ctx context.Context, id uint) (*entity.Skill, error)
	ListByCandidateFunc func(ctx context.Context, candidateID string, p pagination.Params) ([]entity.Skill, int64, error)
	UpdateFunc          func(ctx context.Context, id uint, patch entity.SkillPatch) (*entity.Skill, error)
	DeleteFunc          func(ctx context.Context, id uint) error
}

func (m *mockSkillRepository) Create(ctx context.Context, s *entity.Skill) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	s.ID = 1
	return nil
}

func (m *mockSkillRepository) FindByID(ctx context.Context, id uint) (*entity.Skill, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrSkillNotFound
}

func (m *mockSkillRepository) ListByCandidate(ctx context.Context, candidateID string, p pagination.Params) ([]entity.Skill, int64, error) {
	if m.ListByCandidateFunc != nil {
		return m.ListByCandidateFunc(ctx, candidateID, p)
	}
	return nil, 0, nil
}

func (m *mockSkillRepository) Update(ctx context.Context, id uint, patch entity.SkillPatch) (*entity.Skill, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, ErrSkillNotFound
}

func (m *mockSkillRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestSkillUsecase_Create(t *testing.T) {
	t.Parallel()

	candidates := &mockCandidateRepository{FindByIDFunc: found("c-1")}

	t.Run("existing candidate", func(t *testing.T) {
		t.Parallel()

		got, err := NewSkillUsecase(&mockSkillRepository{}, candidates).Create(context.Background(), "c-1", "go")

		require.NoError(t, err)
		assert.Equal(t, entity.Skill{ID: 1, Name: "go", CandidateID: "c-1"}, *got)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		t.Parallel()

		skills := &mockSkillRepository{CreateFunc: func(context.Context, *entity.Skill) error {
			t.Error("skill must not be stored")
			return nil
		}}

		_, err := NewSkillUsecase(skills, candidates).Create(context.Background(), "missing", "go")

		assert.ErrorIs(t, err, ErrCandidateNotFound)
	})
}

func TestSkillUsecase_ListByCandidate(t *testing.T) {
	t.Parallel()

	skills := &mockSkillRepository{ListByCandidateFunc: func(_ context.Context, id string, p pagination.Params) ([]entity.Skill, int64, error) {
		assert.Equal(t, pagination.Params{Page: 2, Size: 1}, p)
		return []entity.Skill{{ID: 2, Name: "sql", CandidateID: id}}, 2, nil
	}}
	uc := NewSkillUsecase(skills, &mockCandidateRepository{FindByIDFunc: found("c-1")})

	page, err := uc.ListByCandidate(context.Background(), "c-1", pagination.Params{Page: 2, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, "sql", page.Items[0].Name)

	_, err = uc.ListByCandidate(context.Background(), "missing", pagination.Params{})
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestSkillUsecase_Update(t *testing.T) {
	t.Parallel()

	name := "golang"
	current := &entity.Skill{ID: 7, Name: "go", CandidateID: "c-1"}

	tests := []struct {
		name       string
		patch      entity.SkillPatch
		wantName   string
		wantUpdate bool
	}{
		{"empty patch reads the skill", entity.SkillPatch{}, "go", false},
		{"name patch is stored", entity.SkillPatch{Name: &name}, "golang", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			updated := false
			skills := &mockSkillRepository{
				FindByIDFunc: func(context.Context, uint) (*entity.Skill, error) {
					s := *current
					return &s, nil
				},
				UpdateFunc: func(_ context.Context, id uint, patch entity.SkillPatch) (*entity.Skill, error) {
					updated = true
					s := *current
					patch.Apply(&s)
					return &s, nil
				},
			}

			got, err := NewSkillUsecase(skills, &mockCandidateRepository{}).Update(context.Background(), 7, tt.patch)

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantUpdate, updated)
		})
	}
}

func TestSkillUsecase_GetAndDelete(t *testing.T) {
	t.Parallel()

	uc := NewSkillUsecase(&mockSkillRepository{DeleteFunc: func(context.Context, uint) error {
		return ErrSkillNotFound
	}}, &mockCandidateRepository{})

	_, err := uc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSkillNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), 1), ErrSkillNotFound)
}
