package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/habit-board-api/internal/dto"
	apierrors "github.com/yukikurage/habit-board-api/internal/errors"
	"github.com/yukikurage/habit-board-api/internal/middleware"
	"github.com/yukikurage/habit-board-api/internal/services"
)

// UserHandler coordinates habit onboarding and progress endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SetHabit records the user's declared daily habit.
func (h *UserHandler) SetHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SetHabitRequest struct {
		Habit string `json:"habit" binding:"required"`
	}

	var req SetHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.SetHabit(userID, req.Habit)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// SetGoal updates the user's completion target.
func (h *UserHandler) SetGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SetGoalRequest struct {
		GoalCount int `json:"goal_count" binding:"required"`
	}

	var req SetGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.SetGoalCount(userID, req.GoalCount)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goal_count": user.GoalCount,
	})
}

// GetProgress returns the user's completion counters.
func (h *UserHandler) GetProgress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	progress, err := h.userService.GetProgress(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProgressDTO(
		progress.CompletedCount,
		progress.StreakDays,
		progress.GoalCount,
		progress.LastCompletedDate,
	))
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrHabitRequired),
		errors.Is(err, services.ErrInvalidGoalCount):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
