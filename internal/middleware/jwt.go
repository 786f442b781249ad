package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusmitra/portal/internal/pkg/jwt"
	"github.com/campusmitra/portal/internal/pkg/response"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "user_role"
)

func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or missing token")
			c.Abort()
			return
		}
		applyClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth resolves the principal when a valid bearer token is
// present and lets the request through anonymously otherwise. Used by the
// public chat endpoint.
func OptionalJWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, secret); ok {
			applyClaims(c, claims)
		}
		c.Next()
	}
}

func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRoleKey)
		name, _ := role.(string)
		if _, ok := allowed[name]; !ok {
			response.Error(c, http.StatusForbidden, "forbidden", "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret []byte) (*jwt.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	claims, err := jwt.ParseToken(parts[1], secret)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func applyClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextUserIDKey, claims.UserID)
	c.Set(ContextRoleKey, claims.Role)
	if claims.Email != "" {
		c.Set("user_email", claims.Email)
	}
}
