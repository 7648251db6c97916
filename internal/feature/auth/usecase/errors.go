// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"errors"

	jwtmw "candidate_backend/internal/platform/jwt"
)

var (
	// ErrUserNotFound はメールアドレスまたはIDでユーザーが見つからない場合に返されます。
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists は登録済みのメールアドレスでユーザーを作成しようとした場合に返されます。
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials はメールが未登録、またはパスワードが一致しない場合に返されます。
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword は新規パスワードが長さの要件を満たさない場合に返されます。
	ErrWeakPassword = errors.New("password is too short")

	// ErrUnauthorized はトークンが拒否された場合に ResolveCurrentUser が返します。
	// どの検証で失敗したかは区別しません。認証ミドルウェアはこれを401に変換します。
	ErrUnauthorized = jwtmw.ErrUnauthorized
)
