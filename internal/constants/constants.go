package constants

import "time"

// Session
const (
	SessionCookieName = "habit_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
)

// Validation
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Progress defaults
const (
	// DefaultGoalCount is the completion target a user starts with.
	DefaultGoalCount = 30
)

// Leaderboard
const (
	LeaderboardLimit    = 50
	LeaderboardCacheKey = "leaderboard:completed"
	LeaderboardCacheTTL = 30 * time.Second
)
