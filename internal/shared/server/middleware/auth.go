package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	authErrorKey = "authError"
)

// Auth resolves an optional bearer token into the request identity.
// Requests without a usable token continue anonymously; routes that need a
// caller are wrapped with RequireUser.
func Auth(authn auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || authn == nil {
			c.Set(authErrorKey, true)
			c.Next()
			return
		}

		principal, err := authn.Authenticate(c.Request.Context(), parts[1])
		if err != nil && !errors.Is(err, auth.ErrInvalidToken) {
			// The token could not be checked; the caller is neither known nor anonymous.
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to verify identity", err)
			return
		}
		if err != nil {
			telemetry.Warn("auth.token_rejected", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      err,
			})
			c.Set(authErrorKey, true)
			c.Next()
			return
		}

		c.Set(userIDKey, principal.UserID)
		if principal.Email != "" {
			c.Set(userEmailKey, principal.Email)
		}
		c.Next()
	}
}

// RequireUser rejects requests that did not authenticate with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFromContext(c) != "" {
			c.Next()
			return
		}
		message := "missing authorization token"
		if _, bad := c.Get(authErrorKey); bad {
			message = "invalid or expired token"
		}
		respond.Error(c, http.StatusUnauthorized, "unauthorized", message, nil)
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// SetUserID attaches an identity to the context. Tests use it to skip token handling.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}
