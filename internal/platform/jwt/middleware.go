package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/shared/identity"
)

const (
	// ContextUserID holds the authenticated user's id (uint).
	ContextUserID = "userID"
	// ContextIdentity holds the authenticated identity.Identity snapshot.
	ContextIdentity = "identity"

	bearerPrefix = "Bearer "
)

// TokenVerifier checks an access token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// IdentityStore resolves a token subject to an account.
// It must return an error wrapping identity.ErrUnknown when no account exists.
type IdentityStore interface {
	Identify(ctx context.Context, id uint) (identity.Identity, error)
}

// AuthRequired returns a Gin middleware that admits only requests carrying a valid
// bearer token whose subject is an active account.
func AuthRequired(tokens TokenVerifier, users IdentityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			unauthorized(c)
			return
		}

		subject, err := tokens.Verify(strings.TrimPrefix(auth, bearerPrefix))
		if err != nil {
			slog.Debug("token rejected", "error", err, "remote_addr", c.ClientIP())
			unauthorized(c)
			return
		}

		userID, err := strconv.ParseUint(subject, 10, 0)
		if err != nil || userID == 0 {
			unauthorized(c)
			return
		}

		id, err := users.Identify(c.Request.Context(), uint(userID))
		if err != nil {
			if errors.Is(err, identity.ErrUnknown) {
				unauthorized(c)
				return
			}
			slog.Error("identity lookup failed", "error", err, "user_id", userID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}
		// a token outlives deactivation, so re-check the account
		if !id.IsActive {
			unauthorized(c)
			return
		}

		c.Set(ContextUserID, id.ID)
		c.Set(ContextIdentity, id)
		c.Request = c.Request.WithContext(identity.NewContext(c.Request.Context(), id))
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthRequired.
func CurrentIdentity(c *gin.Context) (identity.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return identity.Identity{}, false
	}
	id, ok := v.(identity.Identity)
	return id, ok
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
}
