package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles allows only requests whose role string contains one of
// allowedRoles. Roles may be compound ("admin,user"), so each component
// is matched individually. Assumes RequireAuth ran earlier and set the
// role on the context.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := UserRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "unauthorized: no role on session",
			})
			return
		}

		for _, part := range strings.Split(role, ",") {
			if _, ok := allowed[strings.ToLower(strings.TrimSpace(part))]; ok {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "forbidden: role not allowed",
		})
	}
}
