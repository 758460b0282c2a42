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
	"github.com/yukikurage/habit-board-api/internal/utils"
)

// PostHandler coordinates board post endpoints.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// ListPosts returns board posts, newest first.
func (h *PostHandler) ListPosts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListPostsInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if approvedStr := c.Query("approved"); approvedStr != "" {
		approved, err := strconv.ParseBool(approvedStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid approved filter")
			return
		}
		input.Approved = &approved
	}

	posts, total, err := h.postService.ListPosts(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": dto.ToPostListDTO(posts),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetPost returns a single post with its author and comments.
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.postService.GetPost(postID)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostDTO(*post))
}

// CreatePost creates a new board post.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePostRequest struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
		ImageURL string `json:"image_url"`
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.postService.CreatePost(services.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		AuthorID: userID,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostDTO(*post))
}

// DeletePost removes a post and its comments. Author or teacher only.
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.postService.DeletePost(postID, actor); err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post deleted successfully",
	})
}

// ApprovePost marks a post approved and credits the author's progress.
// Teacher role enforced by middleware.
func (h *PostHandler) ApprovePost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.postService.ApprovePost(c.Request.Context(), postID)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostDTO(*post))
}

func parsePostID(c *gin.Context) (uint64, bool) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid post ID")
		return 0, false
	}
	return postID, true
}

func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrAuthorMissing):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPostApprovedOrMissing):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrApprovalConflict):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrPostDeleteForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrPostTitleRequired),
		errors.Is(err, services.ErrPostContentRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
