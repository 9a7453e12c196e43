package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkit/parishkit/internal/model"
	"github.com/parishkit/parishkit/internal/repository"
)

func newTestContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestSetPageHeaders(t *testing.T) {
	c := newTestContext(t, "/churches")

	setPageHeaders(c, repository.Page[model.Church]{
		Data:       []model.Church{},
		TotalCount: 41,
		TotalPages: 3,
	})

	assert.Equal(t, "41", c.Response().Header().Get("X-Total-Count"))
	assert.Equal(t, "3", c.Response().Header().Get("X-Total-Pages"))
}

func TestListRequestBindsQueryParams(t *testing.T) {
	c := newTestContext(t, "/churches?page=2&perPage=50&orderKey=createdAt&orderValue=asc")

	var req ListRequest
	require.NoError(t, c.Bind(&req))

	params := req.PageParams()
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 50, params.PerPage)
	assert.Equal(t, "createdAt", params.OrderKey)
	assert.Equal(t, "asc", params.OrderValue)
}

func TestScopedListRequestFilter(t *testing.T) {
	id := uuid.New()

	t.Run("church scope becomes an equality filter", func(t *testing.T) {
		c := newTestContext(t, "/volunteers?churchId="+id.String())

		var req ScopedListRequest
		require.NoError(t, c.Bind(&req))
		require.NoError(t, req.Validate())

		f := req.Filter()
		require.Len(t, f, 1)
		assert.Equal(t, "church_id", f[0].Col)
		assert.Equal(t, id, f[0].Val)
	})

	t.Run("absent scope yields no filter", func(t *testing.T) {
		c := newTestContext(t, "/volunteers")

		var req ScopedListRequest
		require.NoError(t, c.Bind(&req))
		require.NoError(t, req.Validate())
		assert.Nil(t, req.Filter())
	})

	t.Run("malformed scope fails validation", func(t *testing.T) {
		c := newTestContext(t, "/volunteers?churchId=not-a-uuid")

		var req ScopedListRequest
		require.NoError(t, c.Bind(&req))
		assert.Error(t, req.Validate())
	})
}

func TestIDsRequestValidation(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("valid ids convert", func(t *testing.T) {
		req := IDsRequest{IDs: []string{a.String(), b.String()}}
		require.NoError(t, req.Validate())
		assert.Equal(t, []uuid.UUID{a, b}, req.UUIDs())
	})

	t.Run("empty list rejected", func(t *testing.T) {
		req := IDsRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("non-uuid entry rejected", func(t *testing.T) {
		req := IDsRequest{IDs: []string{a.String(), "nope"}}
		assert.Error(t, req.Validate())
	})
}
