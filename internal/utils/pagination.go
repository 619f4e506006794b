package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vannt010391/staff-management/internal/constants"
)

// PaginationParams is the page window requested by a list endpoint. The
// offset arithmetic lives in database.Paginate.
type PaginationParams struct {
	Page  int
	Limit int
}

// GetPaginationParams reads page and limit from the query string, clamping
// out-of-range values to the configured bounds.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{Page: page, Limit: limit}
}
