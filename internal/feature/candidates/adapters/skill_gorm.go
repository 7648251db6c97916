package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"candidate_backend/internal/feature/candidates/domain/entity"
	"candidate_backend/internal/feature/candidates/usecase"
	"candidate_backend/internal/shared/pagination"
)

type skillRepository struct {
	db *gorm.DB
}

var _ usecase.SkillRepository = (*skillRepository)(nil)

// NewSkillRepository creates a skillRepository on the given connection.
func NewSkillRepository(db *gorm.DB) *skillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, s *entity.Skill) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return usecase.ErrCandidateNotFound
		}
		return err
	}
	return nil
}

func (r *skillRepository) FindByID(ctx context.Context, id uint) (*entity.Skill, error) {
	return findSkill(r.db.WithContext(ctx), id)
}

func (r *skillRepository) ListByCandidate(ctx context.Context, candidateID string, p pagination.Params) ([]entity.Skill, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Skill{}).Where("candidate_id = ?", candidateID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []entity.Skill
	if err := q.Order("id ASC").Offset(p.Offset()).Limit(p.Limit()).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update reads, patches and saves the skill inside one transaction.
func (r *skillRepository) Update(ctx context.Context, id uint, patch entity.SkillPatch) (*entity.Skill, error) {
	var out *entity.Skill
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := findSkill(tx, id)
		if err != nil {
			return err
		}
		patch.Apply(s)
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *skillRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Skill{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSkillNotFound
	}
	return nil
}

func findSkill(q *gorm.DB, id uint) (*entity.Skill, error) {
	var s entity.Skill
	if err := q.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSkillNotFound
		}
		return nil, err
	}
	return &s, nil
}
