package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUser is the gin context key holding the resolved identity.
const ContextUser = "currentUser"

const bearerPrefix = "Bearer "

// ErrUnauthorized is the single error kind for every rejected credential.
// Resolvers wrap or return it so the middleware can answer 401 without
// telling the caller whether the token or the identity was at fault.
var ErrUnauthorized = errors.New("unauthorized")

// Resolver maps a raw bearer token to an identity.
type Resolver[U any] interface {
	ResolveCurrentUser(ctx context.Context, token string) (U, error)
}

// AuthRequired returns a gin middleware that resolves the bearer token on
// every request and stores the identity under ContextUser.
// Nothing is cached between requests.
func AuthRequired[U any](resolver Resolver[U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
		if !strings.HasPrefix(auth, bearerPrefix) || token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		user, err := resolver.ResolveCurrentUser(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				slog.Warn("rejected bearer token", "remote_addr", c.ClientIP(), "path", c.FullPath())
				abortUnauthorized(c, "could not validate credentials")
				return
			}
			slog.Error("failed to resolve current user", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the identity stored by AuthRequired.
func CurrentUser[U any](c *gin.Context) (U, bool) {
	var zero U
	v, ok := c.Get(ContextUser)
	if !ok {
		return zero, false
	}
	user, ok := v.(U)
	return user, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
