package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/habit-board-api/internal/constants"
)

// PaginationParams holds the validated page and page-size for a listing
type PaginationParams struct {
	Page  int
	Limit int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams extracts pagination parameters from the request,
// clamping out-of-range values back to the defaults
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}
