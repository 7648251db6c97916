// Package entity はauthフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// User はシステムに登録されたユーザーを表します。
type User struct {
	// ID is a UUID assigned when the user registers.
	ID string `gorm:"primaryKey;size:36"`

	// Email identifies the user at login and is the subject of their tokens.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt digest of the user's password, never the plaintext.
	Password string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthenticatedUser is the read-only view of a user resolved from a token.
type AuthenticatedUser struct {
	ID    string
	Email string
}

// Authenticated returns the AuthenticatedUser view of u.
func (u *User) Authenticated() *AuthenticatedUser {
	return &AuthenticatedUser{ID: u.ID, Email: u.Email}
}
