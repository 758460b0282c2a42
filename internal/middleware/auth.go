package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/habit-board-api/internal/constants"
	apierrors "github.com/yukikurage/habit-board-api/internal/errors"
)

// RequireAuth checks if the user is authenticated via session. The session
// only ever stores the user ID as a uint64, so anything else counts as
// unauthenticated.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(constants.ContextKeyUserID).(uint64)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint64)
	return userID, ok
}
