package database

import "gorm.io/gorm"

// Paginate applies offset pagination to a GORM query. page is 1-based.
func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}
