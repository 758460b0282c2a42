package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/habit-board-api/internal/dto"
	apierrors "github.com/yukikurage/habit-board-api/internal/errors"
	"github.com/yukikurage/habit-board-api/internal/middleware"
	"github.com/yukikurage/habit-board-api/internal/services"
)

// CommentHandler coordinates comment endpoints.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListComments returns all comments for a post, oldest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(postID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch comments")
		return
	}

	items := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = dto.ToCommentDTO(comment)
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": items,
	})
}

// AddComment creates a comment under a post.
func (h *CommentHandler) AddComment(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(postID, userID, req.Content)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment. Author or teacher only.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	commentID, err := strconv.ParseUint(c.Param("commentID"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid comment ID")
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.commentService.DeleteComment(postID, commentID, actor); err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrCommentWrongPost):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCommentDeleteForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCommentContentRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
