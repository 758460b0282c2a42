package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/habit-board-api/internal/models"
)

var (
	// ErrCommentPostMissing is returned when the parent post of a comment
	// does not exist.
	ErrCommentPostMissing = errors.New("comment repository: post not found")
	// ErrCommentMissing is returned when the comment to delete does not exist.
	ErrCommentMissing = errors.New("comment repository: comment not found")
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create inserts the comment and increments the parent post's counter in one
// transaction. Either half failing aborts both.
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			Update("comment_count", gorm.Expr("comment_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCommentPostMissing
		}

		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		return nil
	})
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPostID lists comments for a post, oldest first
func (r *GormCommentRepository) ListByPostID(postID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete removes the comment and decrements the parent post's counter in one
// transaction.
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentMissing
			}
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCommentMissing
		}

		return tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			Update("comment_count", gorm.Expr("comment_count - ?", 1)).Error
	})
}
