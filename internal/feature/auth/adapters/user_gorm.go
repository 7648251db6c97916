// Package adapters はauthフィーチャーのgormリポジトリを提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"candidate_backend/internal/feature/auth/domain/entity"
	"candidate_backend/internal/feature/auth/usecase"
	"candidate_backend/internal/platform/db"
)

// userRepository は usecase.UserRepository のgorm実装です。
type userRepository struct {
	db *gorm.DB
}

// userRepository が usecase.UserRepository を実装していることをコンパイル時に確認
var _ usecase.UserRepository = (*userRepository)(nil)

// NewUserRepository は指定された接続で userRepository を生成します。
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// Create は u を保存します。IDが未設定なら採番します。
// メールが重複している場合は usecase.ErrEmailAlreadyExists を返します。
func (r *userRepository) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user must not be nil")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail は該当ユーザーがいない場合 usecase.ErrUserNotFound を返します。
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

