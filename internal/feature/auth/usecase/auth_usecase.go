package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"candidate_backend/internal/feature/auth/domain/entity"
	jwtmw "candidate_backend/internal/platform/jwt"
)

const (
	// minPasswordLength は新規パスワードの最小文字数です。
	minPasswordLength = 8

	// dummyHash はユーザーが存在しない場合の比較対象です。
	// 未登録メールでもパスワード誤りと同じだけbcryptの計算を行います。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// インターフェースは利用側（usecase）で定義し、adapters がそれを実装します。
type UserRepository interface {
	// Create は新規ユーザーを保存します。メール重複時は ErrEmailAlreadyExists を返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は該当ユーザーがいない場合 ErrUserNotFound を返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と照合を行います。
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

// TokenService はアクセストークンの発行と検証を行います。
type TokenService interface {
	Issue(claim jwtmw.Claim) (string, error)
	Verify(token string) (*jwtmw.Claim, error)
}

// authUsecase は認証のビジネスロジックを実装します。
// 呼び出し間で状態を保持しません。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenService
}

// NewAuthUsecase は authUsecase の新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenService) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たすか確認します。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}
	return nil
}

// ResolveCurrentUser はBearerトークンから発行先のユーザーを解決します。
// 期限切れ・不正・subjectなしのトークンや未登録ユーザーのトークンは
// すべて ErrUnauthorized になります。ストアの障害はラップしてそのまま返します。
func (u *authUsecase) ResolveCurrentUser(ctx context.Context, token string) (*entity.AuthenticatedUser, error) {
	claim, err := u.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if claim.Subject == "" {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, jwtmw.ErrMissingSubject)
	}

	user, err := u.users.FindByEmail(ctx, claim.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user.Authenticated(), nil
}

// AuthenticateWithPassword はメールとパスワードが一致するユーザーを返します。
// 一致しない場合は ErrInvalidCredentials を返します。bcryptの比較は常に実行します。
func (u *authUsecase) AuthenticateWithPassword(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	digest := dummyHash
	if user != nil {
		digest = user.Password
	}
	match := u.hasher.Verify(password, digest)

	if user == nil || !match {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Signup は新規ユーザーを登録し、アクセストークンを返します。
func (u *authUsecase) Signup(ctx context.Context, email, password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	user := &entity.User{ID: uuid.NewString(), Email: email, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}

	return u.issueFor(user)
}

// Login はユーザーを認証し、署名済みのアクセストークンを返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.AuthenticateWithPassword(ctx, email, password)
	if err != nil {
		return "", err
	}
	return u.issueFor(user)
}

func (u *authUsecase) issueFor(user *entity.User) (string, error) {
	token, err := u.tokens.Issue(jwtmw.Claim{Subject: user.Email})
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
