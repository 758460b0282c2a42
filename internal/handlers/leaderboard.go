package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/habit-board-api/internal/dto"
	apierrors "github.com/yukikurage/habit-board-api/internal/errors"
	"github.com/yukikurage/habit-board-api/internal/services"
)

// LeaderboardHandler serves the completed-goal ranking.
type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard returns users ranked by completion count.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	users, err := h.leaderboardService.Get(c.Request.Context())
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch leaderboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": dto.ToLeaderboardDTO(users),
	})
}
