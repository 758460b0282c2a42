package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	Habit        string         `gorm:"type:text" json:"habit"`
	GoalCount    int            `gorm:"not null;default:30" json:"goal_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Progress counters. Mutated only by the approval transaction, except
	// GoalCount which the user sets directly. The last completed day is a
	// plain YYYY-MM-DD string in the application timezone; a DATE column
	// would be re-anchored to the driver's location on the way back and
	// could shift the day.
	CompletedCount    int    `gorm:"not null;default:0" json:"completed_count"`
	StreakDays        int    `gorm:"not null;default:0" json:"streak_days"`
	LastCompletedDate string `gorm:"type:varchar(10);not null;default:''" json:"last_completed_date,omitempty"`

	// Relations
	Posts    []Post    `gorm:"foreignKey:AuthorID" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"-"`
}

// IsTeacher reports whether the user may approve posts.
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
