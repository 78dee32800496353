package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campusforge/recruit-backend/internal/access"
	"github.com/campusforge/recruit-backend/internal/response"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyActor is the Gin context key for the authenticated actor.
	ContextKeyActor = "actor"
)

// RequireAuth validates a JWT from the Authorization header and stores the
// resulting actor on the context.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := extractActor(c, authService)
		if err != nil {
			code := response.ErrTokenInvalid
			if errors.Is(err, service.ErrTokenExpired) {
				code = response.ErrTokenExpired
			}
			response.AbortFail(c, http.StatusUnauthorized, code)
			return
		}

		c.Set(ContextKeyActor, actor)
		c.Next()
	}
}

// OptionalAuth resolves an actor when credentials are present but lets
// anonymous requests pass through. Used on public intake endpoints so a
// signed-in applicant's submission gets attributed to them.
func OptionalAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, err := extractActor(c, authService); err == nil {
			c.Set(ContextKeyActor, actor)
		}
		c.Next()
	}
}

// RequireAdmin validates a JWT and rejects actors without the admin role.
func RequireAdmin(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := extractActor(c, authService)
		if err != nil {
			code := response.ErrTokenInvalid
			if errors.Is(err, service.ErrTokenExpired) {
				code = response.ErrTokenExpired
			}
			response.AbortFail(c, http.StatusUnauthorized, code)
			return
		}

		if !actor.IsAdmin() {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}

		c.Set(ContextKeyActor, actor)
		c.Next()
	}
}

// GetActor retrieves the authenticated actor from the Gin context. The bool
// is false for anonymous requests.
func GetActor(c *gin.Context) (access.Actor, bool) {
	val, exists := c.Get(ContextKeyActor)
	if !exists {
		return access.Actor{}, false
	}
	actor, ok := val.(access.Actor)
	return actor, ok
}

func extractActor(c *gin.Context, authService *service.AuthService) (access.Actor, error) {
	tokenStr := ""

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenStr = parts[1]
		}
	}

	// Fallback for WebSocket and EventSource clients which cannot send headers.
	if tokenStr == "" {
		tokenStr = c.Query("token")
	}

	if tokenStr == "" {
		return access.Actor{}, service.ErrTokenInvalid
	}

	claims, err := authService.ValidateAccessToken(tokenStr)
	if err != nil {
		return access.Actor{}, err
	}

	id, err := claims.SubjectID()
	if err != nil {
		return access.Actor{}, service.ErrTokenInvalid
	}

	return access.Actor{ID: id, Email: claims.Email, Roles: claims.Roles}, nil
}
