package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Board listing is newest-first; approval filters on the flag
		{"posts", "idx_posts_created_at", "created_at"},
		{"posts", "idx_posts_author_id", "author_id"},
		{"posts", "idx_posts_approved", "approved"},

		// Comment lookups are always scoped to a post
		{"comments", "idx_comments_post_id", "post_id"},
		{"comments", "idx_comments_author_id", "author_id"},

		// Leaderboard sorts users by completion count
		{"users", "idx_users_completed_count", "completed_count"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
