package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"mokka-api/internal/pkg/cookie"
	"mokka-api/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxAdminUsernameKey = "admin_username"

type AuthMiddleware struct {
	jwtService *jwt.Service
}

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// RequireAuth guards the admin surface. The token comes from the session
// cookie, with a bearer header fallback for API clients.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetSessionToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		if claims.Role != jwt.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Set(ctxAdminUsernameKey, claims.Username)
		c.Next()
	}
}

func GetAdminUsername(c *gin.Context) string {
	if v, exists := c.Get(ctxAdminUsernameKey); exists {
		if username, ok := v.(string); ok {
			return username
		}
	}
	return ""
}
