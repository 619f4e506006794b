package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vannt010391/staff-management/internal/constants"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	params := paramsFor(t, "")
	require.Equal(t, 1, params.Page)
	require.Equal(t, constants.DefaultPageSize, params.Limit)
}

func TestGetPaginationParams_ClampsOutOfRange(t *testing.T) {
	params := paramsFor(t, "page=0&limit=0")
	require.Equal(t, 1, params.Page)
	require.Equal(t, constants.DefaultPageSize, params.Limit)

	params = paramsFor(t, "page=-3&limit=500")
	require.Equal(t, 1, params.Page)
	require.Equal(t, constants.DefaultPageSize, params.Limit)

	params = paramsFor(t, "page=4&limit=100")
	require.Equal(t, 4, params.Page)
	require.Equal(t, constants.MaxPageSize, params.Limit)
}
