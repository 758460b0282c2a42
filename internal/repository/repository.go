package repository

import (
	"time"

	"github.com/yukikurage/habit-board-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// ListByCompletedCount lists users ordered by completion count, highest first
	ListByCompletedCount(limit int) ([]models.User, error)
}

// PostFilter holds filtering options for listing posts
type PostFilter struct {
	AuthorID *uint64
	Approved *bool
	Page     int
	PageSize int
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create creates a new post
	Create(post *models.Post) error

	// FindByID finds a post by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Post, error)

	// List retrieves posts newest-first with filtering and pagination
	List(filter PostFilter) ([]models.Post, int64, error)

	// Delete removes a post and all of its comments
	Delete(id uint64) error

	// ApproveAndCredit atomically marks the post approved and credits the
	// author's progress for the given calendar day. See the contract on
	// GormPostRepository.ApproveAndCredit.
	ApproveAndCredit(postID, authorID uint64, today time.Time, loc *time.Location) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create inserts a comment and increments the parent post's counter
	// in one transaction
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByPostID lists comments for a post, oldest first
	ListByPostID(postID uint64) ([]models.Comment, error)

	// Delete removes a comment and decrements the parent post's counter
	// in one transaction
	Delete(id uint64) error
}
