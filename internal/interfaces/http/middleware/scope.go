package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin rejects requests from non-operator principals with a 403.
// Audience enforcement happens in the application layer; this guard only
// keeps customers off the back-office surface.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok || !p.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Administrator access required",
			})
			return
		}
		c.Next()
	}
}
