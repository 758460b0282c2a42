package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	PostID    uint64         `gorm:"not null;index" json:"post_id"`
	AuthorID  uint64         `gorm:"not null" json:"author_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Post   Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
