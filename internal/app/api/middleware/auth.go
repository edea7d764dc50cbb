package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/agentprompts/backend/pkg/config"
	"github.com/agentprompts/backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Session tokens are minted by the external auth service as HS256 JWTs; this
// middleware only validates them and extracts the identity.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

func parseSession(cfg *config.Config, c *gin.Context) (*sessionClaims, error) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, fmt.Errorf("missing bearer token")
	}
	raw := strings.TrimPrefix(h, "Bearer ")

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

func attachIdentity(c *gin.Context, claims *sessionClaims) {
	c.Set(ContextKeyUserID, claims.Subject)
	c.Set(ContextKeyUserEmail, claims.Email)

	ctx := context.WithValue(c.Request.Context(), "user_id", claims.Subject)
	c.Request = c.Request.WithContext(ctx)
}

// RequireAuth rejects requests without a valid session token.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseSession(cfg, c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, nil))
			return
		}
		attachIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// passes anonymous requests through untouched.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseSession(cfg, c); err == nil {
			attachIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin allows only configured admin user IDs. Must run after
// RequireAuth.
func RequireAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.IsAdmin(c.GetString(ContextKeyUserID)) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, nil))
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID, empty for anonymous requests.
func UserID(c *gin.Context) string { return c.GetString(ContextKeyUserID) }

// UserEmail returns the authenticated user's email, empty for anonymous
// requests.
func UserEmail(c *gin.Context) string { return c.GetString(ContextKeyUserEmail) }
