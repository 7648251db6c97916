package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"candidate_backend/internal/feature/auth/domain/entity"
	jwtmw "candidate_backend/internal/platform/jwt"
	"candidate_backend/internal/platform/password"
)

// mockUserRepository is a func-field fake of UserRepository.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

// usersOf returns a repository holding exactly the given users.
func usersOf(users ...*entity.User) *mockUserRepository {
	return &mockUserRepository{
		FindByEmailFunc: func(_ context.Context, email string) (*entity.User, error) {
			for _, u := range users {
				if u.Email == email {
					return u, nil
				}
			}
			return nil, ErrUserNotFound
		},
	}
}

// spyHasher records Verify calls on top of a real hasher.
type spyHasher struct {
	*password.Hasher
	verified []string
}

func (s *spyHasher) Verify(secret, digest string) bool {
	s.verified = append(s.verified, digest)
	return s.Hasher.Verify(secret, digest)
}

func newGenerator(t *testing.T) *jwtmw.Generator {
	t.Helper()

	gen, err := jwtmw.NewGenerator(jwtmw.Config{Secret: "test-secret", Algorithm: "HS256", Expiration: time.Hour})
	require.NoError(t, err)
	return gen
}

func storedUser(t *testing.T, email, plaintext string) *entity.User {
	t.Helper()

	digest, err := password.NewHasher(bcrypt.MinCost).Hash(plaintext)
	require.NoError(t, err)
	return &entity.User{ID: "3f1b4a2e-0000-4000-8000-000000000001", Email: email, Password: digest}
}

func flipChar(s string, i int) string {
	b := []byte(s)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func TestAuthUsecase_ResolveCurrentUser(t *testing.T) {
	t.Parallel()

	user := storedUser(t, "a@x.com", "secret")
	gen := newGenerator(t)
	uc := NewAuthUsecase(usersOf(user), password.NewHasher(bcrypt.MinCost), gen)

	token, err := gen.Issue(jwtmw.Claim{Subject: "a@x.com"})
	require.NoError(t, err)

	got, err := uc.ResolveCurrentUser(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, &entity.AuthenticatedUser{ID: user.ID, Email: "a@x.com"}, got)
}

func TestAuthUsecase_ResolveCurrentUser_IsRepeatable(t *testing.T) {
	t.Parallel()

	user := storedUser(t, "a@x.com", "secret")
	gen := newGenerator(t)
	lookups := 0
	repo := &mockUserRepository{FindByEmailFunc: func(_ context.Context, email string) (*entity.User, error) {
		lookups++
		return user, nil
	}}
	uc := NewAuthUsecase(repo, password.NewHasher(bcrypt.MinCost), gen)

	token, err := gen.Issue(jwtmw.Claim{Subject: "a@x.com"})
	require.NoError(t, err)

	first, err := uc.ResolveCurrentUser(context.Background(), token)
	require.NoError(t, err)
	second, err := uc.ResolveCurrentUser(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, lookups, "each call must look the user up again")
}

func TestAuthUsecase_ResolveCurrentUser_Unauthorized(t *testing.T) {
	t.Parallel()

	gen := newGenerator(t)
	deleted := storedUser(t, "gone@x.com", "secret")
	live := storedUser(t, "a@x.com", "secret")

	expired, err := gen.IssueWithTTL(jwtmw.Claim{Subject: "a@x.com"}, -time.Minute)
	require.NoError(t, err)
	valid, err := gen.Issue(jwtmw.Claim{Subject: "a@x.com"})
	require.NoError(t, err)
	forDeleted, err := gen.Issue(jwtmw.Claim{Subject: deleted.Email})
	require.NoError(t, err)
	tampered := flipChar(valid, len(valid)-3)

	tests := []struct {
		name  string
		token string
		cause error
	}{
		{"expired token", expired, jwtmw.ErrTokenExpired},
		{"malformed token", "not-a-token", jwtmw.ErrTokenMalformed},
		{"tampered signature", tampered, jwtmw.ErrTokenMalformed},
		{"user deleted after issuance", forDeleted, ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := NewAuthUsecase(usersOf(live), password.NewHasher(bcrypt.MinCost), gen)

			got, err := uc.ResolveCurrentUser(context.Background(), tt.token)

			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.ErrorIs(t, err, tt.cause)
			assert.Nil(t, got)
		})
	}
}

func TestAuthUsecase_ResolveCurrentUser_UnknownSubject(t *testing.T) {
	t.Parallel()

	gen := newGenerator(t)
	uc := NewAuthUsecase(usersOf(), password.NewHasher(bcrypt.MinCost), gen)

	token, err := gen.Issue(jwtmw.Claim{Subject: "a@x.com"})
	require.NoError(t, err)

	got, err := uc.ResolveCurrentUser(context.Background(), token)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, got)
}

func TestAuthUsecase_ResolveCurrentUser_StoreFailure(t *testing.T) {
	t.Parallel()

	gen := newGenerator(t)
	dbErr := errors.New("connection refused")
	repo := &mockUserRepository{FindByEmailFunc: func(context.Context, string) (*entity.User, error) {
		return nil, dbErr
	}}
	uc := NewAuthUsecase(repo, password.NewHasher(bcrypt.MinCost), gen)

	token, err := gen.Issue(jwtmw.Claim{Subject: "a@x.com"})
	require.NoError(t, err)

	_, err = uc.ResolveCurrentUser(context.Background(), token)

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrUnauthorized, "infrastructure failures are not authentication failures")
}

func TestAuthUsecase_AuthenticateWithPassword(t *testing.T) {
	t.Parallel()

	user := storedUser(t, "a@x.com", "secret")

	tests := []struct {
		name       string
		email      string
		password   string
		wantUser   bool
		wantDigest string
	}{
		{"matching password", "a@x.com", "secret", true, user.Password},
		{"wrong password", "a@x.com", "wrong", false, user.Password},
		{"unknown email", "nobody@x.com", "secret", false, dummyHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hasher := &spyHasher{Hasher: password.NewHasher(bcrypt.MinCost)}
			uc := NewAuthUsecase(usersOf(user), hasher, newGenerator(t))

			got, err := uc.AuthenticateWithPassword(context.Background(), tt.email, tt.password)

			if tt.wantUser {
				require.NoError(t, err)
				assert.Same(t, user, got)
			} else {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Nil(t, got)
			}
			assert.Equal(t, []string{tt.wantDigest}, hasher.verified, "bcrypt must run exactly once on every path")
		})
	}
}

func TestAuthUsecase_AuthenticateWithPassword_StoreFailure(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection refused")
	repo := &mockUserRepository{FindByEmailFunc: func(context.Context, string) (*entity.User, error) {
		return nil, dbErr
	}}
	uc := NewAuthUsecase(repo, password.NewHasher(bcrypt.MinCost), newGenerator(t))

	_, err := uc.AuthenticateWithPassword(context.Background(), "a@x.com", "secret")

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Parallel()

	t.Run("stores a hashed password and returns a token for the email", func(t *testing.T) {
		t.Parallel()

		var created *entity.User
		repo := &mockUserRepository{CreateFunc: func(_ context.Context, user *entity.User) error {
			created = user
			return nil
		}}
		gen := newGenerator(t)
		hasher := password.NewHasher(bcrypt.MinCost)
		uc := NewAuthUsecase(repo, hasher, gen)

		token, err := uc.Signup(context.Background(), "new@x.com", "password123")
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.NotEmpty(t, created.ID)
		assert.NotEqual(t, "password123", created.Password)
		assert.True(t, hasher.Verify("password123", created.Password))

		claim, err := gen.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "new@x.com", claim.Subject)
	})

	t.Run("each signup hashes its own password", func(t *testing.T) {
		t.Parallel()

		var digests []string
		repo := &mockUserRepository{CreateFunc: func(_ context.Context, user *entity.User) error {
			digests = append(digests, user.Password)
			return nil
		}}
		uc := NewAuthUsecase(repo, password.NewHasher(bcrypt.MinCost), newGenerator(t))

		_, err := uc.Signup(context.Background(), "one@x.com", "password-one")
		require.NoError(t, err)
		_, err = uc.Signup(context.Background(), "two@x.com", "password-two")
		require.NoError(t, err)

		require.Len(t, digests, 2)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(digests[0]), []byte("password-one")))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(digests[1]), []byte("password-two")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepository{CreateFunc: func(context.Context, *entity.User) error {
			return ErrEmailAlreadyExists
		}}
		uc := NewAuthUsecase(repo, password.NewHasher(bcrypt.MinCost), newGenerator(t))

		token, err := uc.Signup(context.Background(), "dup@x.com", "password123")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		assert.Empty(t, token)
	})

	t.Run("short password is rejected before hashing", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepository{CreateFunc: func(context.Context, *entity.User) error {
			t.Fatal("Create must not be called")
			return nil
		}}
		uc := NewAuthUsecase(repo, password.NewHasher(bcrypt.MinCost), newGenerator(t))

		_, err := uc.Signup(context.Background(), "a@x.com", "short")

		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	t.Parallel()

	user := storedUser(t, "a@x.com", "secret")
	gen := newGenerator(t)
	uc := NewAuthUsecase(usersOf(user), password.NewHasher(bcrypt.MinCost), gen)

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		token, err := uc.Login(context.Background(), "a@x.com", "secret")
		require.NoError(t, err)

		got, err := uc.ResolveCurrentUser(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		token, err := uc.Login(context.Background(), "a@x.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()

		_, err := uc.Login(context.Background(), "nobody@x.com", "secret")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

type failingTokens struct{}

func (failingTokens) Issue(jwtmw.Claim) (string, error) { return "", errors.New("signing failed") }
func (failingTokens) Verify(string) (*jwtmw.Claim, error) { return nil, jwtmw.ErrTokenMalformed }

func TestAuthUsecase_Login_TokenFailure(t *testing.T) {
	t.Parallel()

	user := storedUser(t, "a@x.com", "secret")
	uc := NewAuthUsecase(usersOf(user), password.NewHasher(bcrypt.MinCost), failingTokens{})

	_, err := uc.Login(context.Background(), "a@x.com", "secret")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate token")
}
