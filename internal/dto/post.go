package dto

import (
	"time"

	"github.com/yukikurage/habit-board-api/internal/models"
)

// PostDTO represents a post in API responses
type PostDTO struct {
	ID           uint64       `json:"id"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	ImageURL     string       `json:"image_url,omitempty"`
	AuthorID     uint64       `json:"author_id"`
	Approved     bool         `json:"approved"`
	CommentCount int          `json:"comment_count"`
	CreatedAt    time.Time    `json:"created_at"`
	Author       *UserDTO     `json:"author,omitempty"`
	Comments     []CommentDTO `json:"comments,omitempty"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	AuthorID  uint64    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    *UserDTO  `json:"author,omitempty"`
}

// ToPostDTO converts a Post model to PostDTO
func ToPostDTO(post models.Post) PostDTO {
	dto := PostDTO{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		AuthorID:     post.AuthorID,
		Approved:     post.Approved,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt,
	}

	// Include author if preloaded
	if post.Author.ID != 0 {
		author := ToUserDTO(post.Author)
		dto.Author = &author
	}

	// Include comments if preloaded
	if len(post.Comments) > 0 {
		dto.Comments = make([]CommentDTO, len(post.Comments))
		for i, comment := range post.Comments {
			dto.Comments[i] = ToCommentDTO(comment)
		}
	}

	return dto
}

// ToPostListDTO converts posts for list responses
func ToPostListDTO(posts []models.Post) []PostDTO {
	items := make([]PostDTO, len(posts))
	for i, post := range posts {
		items[i] = ToPostDTO(post)
	}
	return items
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}

	if comment.Author.ID != 0 {
		author := ToUserDTO(comment.Author)
		dto.Author = &author
	}

	return dto
}
