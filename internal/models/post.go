package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	ImageURL  string         `gorm:"type:varchar(2048)" json:"image_url"`
	AuthorID  uint64         `gorm:"not null" json:"author_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Approved transitions false -> true exactly once, via the approval
	// transaction. It never reverts.
	Approved bool `gorm:"not null;default:false" json:"approved"`

	// CommentCount is only ever written in the same transaction that
	// inserts or deletes a comment.
	CommentCount int `gorm:"not null;default:0" json:"comment_count"`

	// Relations
	Author   User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}
