package app

import (
	"asset-inventory-backend/models"
	"asset-inventory-backend/session"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const SessionCookie = "inv_session"

// AuthRequired accepts either a bearer JWT or a session cookie backed by
// Redis, and puts userID/username/role into the request context.
func AuthRequired(sessions *session.Store, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			claims, err := ParseToken(cfg.JWTSecret, strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid token"})
				return
			}
			c.Set("userID", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
			c.Next()
			return
		}

		ck, err := c.Request.Cookie(SessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		sess, err := sessions.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		c.Set("userID", sess.UserID)
		c.Set("username", sess.Username)
		c.Set("role", sess.Role)
		c.Next()
	}
}

func roleOf(c *gin.Context) string {
	v, _ := c.Get("role")
	r, _ := v.(string)
	return r
}

// AdminOnly gates user management.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if roleOf(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ManagerOrAdmin gates inventory mutations.
func ManagerOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch roleOf(c) {
		case models.RoleAdmin, models.RoleManager:
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
		}
	}
}
