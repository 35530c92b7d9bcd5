package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leadflow/internal/authz"
)

// CurrentUserHeader carries the role selector value of the dashboard.
const CurrentUserHeader = "X-Current-User"

// CurrentUserKey is the gin context key holding the selected user.
const CurrentUserKey = "current_user"

// CurrentUser puts the selected user into the context. The selector is a
// view filter, not an identity check: any value is accepted.
func CurrentUser(defaultUser string) gin.HandlerFunc {
	if strings.TrimSpace(defaultUser) == "" {
		defaultUser = authz.AdminUser
	}
	return func(c *gin.Context) {
		user := strings.TrimSpace(c.GetHeader(CurrentUserHeader))
		if user == "" {
			user = strings.TrimSpace(c.Query("as"))
		}
		if user == "" {
			user = defaultUser
		}
		c.Set(CurrentUserKey, user)
		c.Set("role", authz.RoleOf(user))
		c.Next()
	}
}

// RequireAdmin limits a route to the administrative view.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(CurrentUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
			return
		}
		user, _ := v.(string)
		if !authz.IsAdmin(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CORS allows the dashboard to be served from another origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, "+CurrentUserHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
