package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/habit-board-api/internal/models"
	"github.com/yukikurage/habit-board-api/internal/repository"
)

var (
	ErrPostNotFound          = errors.New("post not found")
	ErrPostTitleRequired     = errors.New("title is required")
	ErrPostContentRequired   = errors.New("content is required")
	ErrPostDeleteForbidden   = errors.New("only the author or a teacher can delete this post")
	ErrPostApprovedOrMissing = errors.New("post already approved or missing")
	ErrAuthorMissing         = errors.New("post author not found")
	ErrApprovalConflict      = errors.New("approval aborted by a concurrent write")
)

// PostService handles board post business logic, including the approval
// transaction that credits the author's progress.
type PostService struct {
	postRepo    repository.PostRepository
	leaderboard *LeaderboardService
	loc         *time.Location

	now func() time.Time
}

// NewPostService creates a new PostService. loc anchors all calendar-day
// arithmetic; leaderboard may be nil when no cache invalidation is wanted.
func NewPostService(postRepo repository.PostRepository, leaderboard *LeaderboardService, loc *time.Location) *PostService {
	return &PostService{
		postRepo:    postRepo,
		leaderboard: leaderboard,
		loc:         loc,
		now:         time.Now,
	}
}

// ListPostsInput represents filters for listing posts
type ListPostsInput struct {
	AuthorID *uint64
	Approved *bool
	Page     int
	PageSize int
}

// ListPosts returns board posts, newest first.
func (s *PostService) ListPosts(input ListPostsInput) ([]models.Post, int64, error) {
	posts, total, err := s.postRepo.List(repository.PostFilter{
		AuthorID: input.AuthorID,
		Approved: input.Approved,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// GetPost returns a post with its author and comments.
func (s *PostService) GetPost(postID uint64) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID, "Author", "Comments", "Comments.Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

// CreatePostInput represents input for creating a post
type CreatePostInput struct {
	Title    string
	Content  string
	ImageURL string
	AuthorID uint64
}

// CreatePost creates a proof-of-practice post on the board. ImageURL is an
// opaque reference produced elsewhere; it is stored without inspection.
func (s *PostService) CreatePost(input CreatePostInput) (*models.Post, error) {
	if input.Title == "" {
		return nil, ErrPostTitleRequired
	}
	if input.Content == "" {
		return nil, ErrPostContentRequired
	}

	post := &models.Post{
		Title:    input.Title,
		Content:  input.Content,
		ImageURL: input.ImageURL,
		AuthorID: input.AuthorID,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return s.postRepo.FindByID(post.ID, "Author")
}

// DeletePost deletes a post and its comments if the actor is the author or
// a teacher.
func (s *PostService) DeletePost(postID uint64, actor *models.User) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to find post: %w", err)
	}

	if post.AuthorID != actor.ID && !actor.IsTeacher() {
		return ErrPostDeleteForbidden
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// ApprovePost marks a post approved and credits the author's progress for
// today, all in one transaction. The teacher-role check happens in the
// middleware; the repository re-validates post state inside the transaction
// so racing approvals cannot double-credit.
func (s *PostService) ApprovePost(ctx context.Context, postID uint64) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostApprovedOrMissing
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	err = s.postRepo.ApproveAndCredit(post.ID, post.AuthorID, s.now(), s.loc)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostApprovedOrMissing):
			return nil, ErrPostApprovedOrMissing
		case errors.Is(err, repository.ErrAuthorMissing):
			return nil, ErrAuthorMissing
		case errors.Is(err, repository.ErrApprovalConflict):
			return nil, ErrApprovalConflict
		default:
			return nil, fmt.Errorf("failed to approve post: %w", err)
		}
	}

	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}

	return s.postRepo.FindByID(post.ID, "Author")
}
