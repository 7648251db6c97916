// Package adapters provides the gorm repositories of the candidates feature.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"candidate_backend/internal/feature/candidates/domain/entity"
	"candidate_backend/internal/feature/candidates/usecase"
	"candidate_backend/internal/platform/db"
	"candidate_backend/internal/shared/pagination"
)

type candidateRepository struct {
	db *gorm.DB
}

var _ usecase.CandidateRepository = (*candidateRepository)(nil)

// NewCandidateRepository creates a candidateRepository on the given connection.
func NewCandidateRepository(db *gorm.DB) *candidateRepository {
	return &candidateRepository{db: db}
}

// Create inserts c, assigning an ID when it has none.
func (r *candidateRepository) Create(ctx context.Context, c *entity.Candidate) error {
	if c == nil {
		return errors.New("candidate must not be nil")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrCandidateConflict
		}
		return err
	}
	return nil
}

func (r *candidateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *candidateRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone = ?", phone)
}

func (r *candidateRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Candidate{}).Where(query, arg).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByID loads the candidate with skills and experience in id order.
func (r *candidateRepository) FindByID(ctx context.Context, id string) (*entity.Candidate, error) {
	var c entity.Candidate
	err := withRelations(r.db.WithContext(ctx)).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCandidateNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List filters on exact matches of the non-empty filter fields, oldest first.
func (r *candidateRepository) List(ctx context.Context, f entity.CandidateFilter, p pagination.Params) ([]entity.Candidate, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Candidate{})
	if f.Name != "" {
		q = q.Where("name = ?", f.Name)
	}
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}
	if f.Phone != "" {
		q = q.Where("phone = ?", f.Phone)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.Candidate
	err := q.Order("created_at ASC").Order("id ASC").
		Offset(p.Offset()).Limit(p.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Delete removes the candidate with its skills and experience in one transaction.
func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c entity.Candidate
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrCandidateNotFound
			}
			return err
		}
		return tx.Select(clause.Associations).Delete(&c).Error
	})
}

func (r *candidateRepository) AddExperience(ctx context.Context, e *entity.Experience) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return usecase.ErrCandidateNotFound
		}
		return err
	}
	return nil
}

// ListAllWithRelations returns every candidate, oldest first, with skills and
// experience in insertion order.
func (r *candidateRepository) ListAllWithRelations(ctx context.Context) ([]entity.Candidate, error) {
	var items []entity.Candidate
	err := withRelations(r.db.WithContext(ctx)).
		Order("created_at ASC").Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Skills", func(q *gorm.DB) *gorm.DB { return q.Order("id ASC") }).
		Preload("Experience", func(q *gorm.DB) *gorm.DB { return q.Order("id ASC") })
}
