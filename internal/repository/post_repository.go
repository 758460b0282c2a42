package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/habit-board-api/internal/database"
	"github.com/yukikurage/habit-board-api/internal/models"
	"github.com/yukikurage/habit-board-api/internal/utils"
)

var (
	// ErrPostApprovedOrMissing is returned when the post to approve does not
	// exist or has already been approved. Concurrent approval attempts on the
	// same post resolve to exactly one winner; every loser gets this error.
	ErrPostApprovedOrMissing = errors.New("post repository: post missing or already approved")
	// ErrAuthorMissing is returned when the post's author record does not exist.
	ErrAuthorMissing = errors.New("post repository: author not found")
	// ErrApprovalConflict is returned when the database aborts the approval
	// transaction because of a concurrent write. The caller may retry.
	ErrApprovalConflict = errors.New("post repository: concurrent write conflict")
)

// GormPostRepository is a GORM implementation of PostRepository
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// FindByID finds a post by ID with optional preloading
func (r *GormPostRepository) FindByID(id uint64, preload ...string) (*models.Post, error) {
	var post models.Post
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&post, id).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// List retrieves posts newest-first with filtering and pagination
func (r *GormPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	var posts []models.Post

	query := r.db.Model(&models.Post{})

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))
	}

	if err := listQuery.Preload("Author").Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Delete removes a post and all of its comments in a transaction.
// Deleting an already-partially-deleted post is idempotent: it simply
// finds fewer comments and proceeds.
func (r *GormPostRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Post{}, id).Error
	})
}

// ApproveAndCredit atomically marks a post approved and credits the author's
// daily progress. All mutations commit together or not at all:
//
//  1. The post flips approved = false -> true via a guarded update, so of any
//     number of concurrent attempts exactly one wins; the rest fail with
//     ErrPostApprovedOrMissing and leave no state behind.
//  2. If the author was already credited today the counter update is skipped
//     but the approval still commits.
//  3. Otherwise the completion counter is incremented, the streak extends by
//     one when yesterday was credited and resets to 1 when it was not, and
//     the last-completed date advances to today.
//
// The per-day credit guard is itself a guarded update, so two approvals of
// different posts by the same author on the same day credit at most once.
func (r *GormPostRepository) ApproveAndCredit(postID, authorID uint64, today time.Time, loc *time.Location) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ? AND approved = ?", postID, false).
			Update("approved", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPostApprovedOrMissing
		}

		var author models.User
		if err := tx.First(&author, authorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuthorMissing
			}
			return err
		}

		day := utils.DayString(today, loc)

		if author.LastCompletedDate == day {
			// Already credited today. The approval commits, the credit is
			// silently skipped.
			return nil
		}

		streak := 1
		if utils.NextDay(author.LastCompletedDate) == day {
			streak = author.StreakDays + 1
		}

		// The stored day is never-completed ('') or YYYY-MM-DD, so the
		// string comparison is a chronological one.
		credit := tx.Model(&models.User{}).
			Where("id = ?", authorID).
			Where("last_completed_date < ?", day).
			Updates(map[string]interface{}{
				"completed_count":     gorm.Expr("completed_count + ?", 1),
				"streak_days":         streak,
				"last_completed_date": day,
			})
		if credit.Error != nil {
			return credit.Error
		}
		// Zero rows means another transaction credited today between our
		// read and write; that degrades to the same-day skip.
		return nil
	})
	if err != nil {
		if isRetryableConflict(err) {
			return fmt.Errorf("%w: %v", ErrApprovalConflict, err)
		}
		return err
	}
	return nil
}
