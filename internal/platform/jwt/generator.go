package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the token lifetime used when Config.Expiration is zero.
const DefaultExpiration = 30 * time.Minute

var (
	// ErrTokenExpired is returned when the token's exp is not after the current time.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenMalformed is returned for bad signatures, unexpected algorithms and unparsable tokens.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrMissingSubject is returned when a validly signed token carries no subject.
	ErrMissingSubject = errors.New("token has no subject")

	// ErrTTLTooShort is returned for a non-negative ttl below jwt.TimePrecision.
	// exp is encoded in whole seconds, so such a token could expire before it is returned.
	ErrTTLTooShort = errors.New("token ttl is shorter than the exp precision")
)

// registered claim names that Claim.Extra cannot override.
var reservedClaims = map[string]struct{}{"sub": {}, "exp": {}, "iat": {}}

// Config holds the signing settings of a Generator.
type Config struct {
	Secret     string
	Algorithm  string // HS256, HS384 or HS512
	Expiration time.Duration
}

// Claim is the identity asserted by a token.
type Claim struct {
	Subject   string
	ExpiresAt time.Time
	Extra     map[string]any
}

// Generator issues and verifies HMAC-signed JWTs.
// It holds no per-token state; a token is valid purely by signature and exp.
type Generator struct {
	secret     []byte
	method     jwt.SigningMethod
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a Generator from an explicit configuration.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: secret must not be empty")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("jwt: unsupported signing algorithm %q", alg)
	}
	expiration := cfg.Expiration
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	if expiration < jwt.TimePrecision {
		return nil, fmt.Errorf("jwt: expiration %s: %w", expiration, ErrTTLTooShort)
	}
	return &Generator{
		secret:     []byte(cfg.Secret),
		method:     method,
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// Issue signs claim with the configured expiration.
func (g *Generator) Issue(claim Claim) (string, error) {
	return g.IssueWithTTL(claim, g.expiration)
}

// IssueWithTTL signs claim so that it expires ttl from now.
// A negative ttl yields a token that is already expired.
func (g *Generator) IssueWithTTL(claim Claim, ttl time.Duration) (string, error) {
	if ttl >= 0 && ttl < jwt.TimePrecision {
		return "", fmt.Errorf("ttl %s: %w", ttl, ErrTTLTooShort)
	}
	now := g.now()
	claims := jwt.MapClaims{}
	for k, v := range claim.Extra {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		claims[k] = v
	}
	claims["sub"] = claim.Subject
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(g.method, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiration of tokenStr and returns its claim.
func (g *Generator) Verify(tokenStr string) (*Claim, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{g.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, ErrMissingSubject
	}

	claim := &Claim{Subject: sub, Extra: map[string]any{}}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claim.ExpiresAt = exp.Time
	}
	for k, v := range mapClaims {
		if _, reserved := reservedClaims[k]; !reserved {
			claim.Extra[k] = v
		}
	}
	return claim, nil
}
