package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/habit-board-api/internal/constants"
	"github.com/yukikurage/habit-board-api/internal/database"
	"github.com/yukikurage/habit-board-api/internal/models"
)

// RequireUser loads the authenticated user's record into the context.
// Handlers that need the role or other profile fields run behind this.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "User not found",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireTeacher checks that the current user holds the teacher role.
// Must run after RequireUser.
func RequireTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		userInterface, exists := c.Get(constants.ContextKeyUser)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "User context required",
			})
			c.Abort()
			return
		}

		user, ok := userInterface.(models.User)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Invalid user data",
			})
			c.Abort()
			return
		}

		if !user.IsTeacher() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only teachers can perform this action",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser retrieves the loaded user record from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	userInterface, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}
