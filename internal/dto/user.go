package dto

import (
	"github.com/yukikurage/habit-board-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
	Habit string          `json:"habit,omitempty"`
}

// ProgressDTO represents a user's completion progress in API responses
type ProgressDTO struct {
	CompletedCount    int    `json:"completed_count"`
	StreakDays        int    `json:"streak_days"`
	GoalCount         int    `json:"goal_count"`
	LastCompletedDate string `json:"last_completed_date,omitempty"`
}

// LeaderboardEntryDTO represents one ranked user
type LeaderboardEntryDTO struct {
	Rank           int    `json:"rank"`
	UserID         uint64 `json:"user_id"`
	Name           string `json:"name"`
	Habit          string `json:"habit,omitempty"`
	CompletedCount int    `json:"completed_count"`
	StreakDays     int    `json:"streak_days"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Habit: user.Habit,
	}
}

// ToProgressDTO converts progress fields to ProgressDTO. The last-completed
// date is already a plain YYYY-MM-DD calendar date.
func ToProgressDTO(completed, streak, goal int, lastCompleted string) ProgressDTO {
	return ProgressDTO{
		CompletedCount:    completed,
		StreakDays:        streak,
		GoalCount:         goal,
		LastCompletedDate: lastCompleted,
	}
}

// ToLeaderboardDTO converts ranked users to leaderboard entries
func ToLeaderboardDTO(users []models.User) []LeaderboardEntryDTO {
	entries := make([]LeaderboardEntryDTO, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntryDTO{
			Rank:           i + 1,
			UserID:         user.ID,
			Name:           user.Name,
			Habit:          user.Habit,
			CompletedCount: user.CompletedCount,
			StreakDays:     user.StreakDays,
		}
	}
	return entries
}
