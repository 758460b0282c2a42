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
	ErrCommentNotFound        = errors.New("comment not found")
	ErrCommentContentRequired = errors.New("comment content is required")
	ErrCommentDeleteForbidden = errors.New("only the author or a teacher can delete this comment")
	ErrCommentWrongPost       = errors.New("comment does not belong to this post")
)

// CommentService handles comment business logic. Counter consistency with
// the parent post lives in the repository transactions.
type CommentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
	}
}

// AddComment creates a comment under a post and bumps the post's counter.
func (s *CommentService) AddComment(postID, authorID uint64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentContentRequired
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		if errors.Is(err, repository.ErrCommentPostMissing) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListComments returns all comments for a post, oldest first.
func (s *CommentService) ListComments(postID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByPostID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment if the actor wrote it or is a teacher,
// decrementing the post's counter in the same transaction.
func (s *CommentService) DeleteComment(postID, commentID uint64, actor *models.User) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.PostID != postID {
		return ErrCommentWrongPost
	}

	if comment.AuthorID != actor.ID && !actor.IsTeacher() {
		return ErrCommentDeleteForbidden
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		if errors.Is(err, repository.ErrCommentMissing) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
