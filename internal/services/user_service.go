package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/habit-board-api/internal/models"
	"github.com/yukikurage/habit-board-api/internal/repository"
)

var (
	ErrHabitRequired    = errors.New("habit text is required")
	ErrInvalidGoalCount = errors.New("goal count must be positive")
)

// UserService handles habit onboarding and progress reads.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// SetHabit records the user's declared daily habit.
func (s *UserService) SetHabit(userID uint64, habit string) (*models.User, error) {
	habit = strings.TrimSpace(habit)
	if habit == "" {
		return nil, ErrHabitRequired
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Habit = habit
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	return user, nil
}

// SetGoalCount updates the user's completion target.
func (s *UserService) SetGoalCount(userID uint64, count int) (*models.User, error) {
	if count <= 0 {
		return nil, ErrInvalidGoalCount
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.GoalCount = count
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update goal count: %w", err)
	}

	return user, nil
}

// Progress summarizes a user's completion state.
type Progress struct {
	CompletedCount    int
	StreakDays        int
	GoalCount         int
	LastCompletedDate string
}

// GetProgress returns the user's completion counters.
func (s *UserService) GetProgress(userID uint64) (*Progress, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &Progress{
		CompletedCount:    user.CompletedCount,
		StreakDays:        user.StreakDays,
		GoalCount:         user.GoalCount,
		LastCompletedDate: user.LastCompletedDate,
	}, nil
}
