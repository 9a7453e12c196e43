package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkit/parishkit/internal/cache"
	"github.com/parishkit/parishkit/internal/errs"
	"github.com/parishkit/parishkit/internal/server"
)

type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (s *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok := s.data[key]
	return val, ok, nil
}

func (s *memStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Incr(ctx context.Context, key string) (int64, error) {
	var v int64
	if cur, ok := s.data[key]; ok {
		v, _ = strconv.ParseInt(cur, 10, 64)
	}
	v++
	s.data[key] = strconv.FormatInt(v, 10)
	return v, nil
}

func newCacheTestServer(store cache.Store) *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Logger: &log,
		Cache:  cache.NewWithStore(store, time.Minute, &log),
	}
}

// do runs one request through the cache middleware into the given handler
// and returns the recorder plus the handler error.
func do(t *testing.T, srv *server.Server, method, target string, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewCacheMiddleware(srv)
	err := mw.Cache()(handler)(c)
	return rec, err
}

func TestCacheMiddlewareServesAndStoresGET(t *testing.T) {
	srv := newCacheTestServer(newMemStore())

	calls := 0
	handler := func(c echo.Context) error {
		calls++
		c.Response().Header().Set("X-Total-Count", "41")
		c.Response().Header().Set("X-Total-Pages", "3")
		return c.JSON(http.StatusOK, map[string]string{"hello": "world"})
	}

	rec, err := do(t, srv, http.MethodGet, "/churches?page=1", handler)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Equal(t, "41", rec.Header().Get("X-Total-Count"))
	assert.Equal(t, "3", rec.Header().Get("X-Total-Pages"))

	rec, err = do(t, srv, http.MethodGet, "/churches?page=1", handler)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second request must be served from cache")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())

	// A replay must carry the same listing headers as the original response.
	assert.Equal(t, "41", rec.Header().Get("X-Total-Count"))
	assert.Equal(t, "3", rec.Header().Get("X-Total-Pages"))

	// A different query string is a different cache entry.
	_, err = do(t, srv, http.MethodGet, "/churches?page=2", handler)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheMiddlewareSkipsUnregisteredPaths(t *testing.T) {
	store := newMemStore()
	srv := newCacheTestServer(store)

	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	}

	_, err := do(t, srv, http.MethodGet, "/status", handler)
	require.NoError(t, err)
	assert.Empty(t, store.data, "system endpoints must not be cached")
}

func TestCacheMiddlewareInvalidatesFamilyOnMutation(t *testing.T) {
	srv := newCacheTestServer(newMemStore())

	get := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int{"n": 1})
	}
	post := func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]int{"n": 2})
	}

	_, err := do(t, srv, http.MethodGet, "/churches", get)
	require.NoError(t, err)

	_, err = do(t, srv, http.MethodPost, "/churches", post)
	require.NoError(t, err)

	rec, err := do(t, srv, http.MethodGet, "/churches", get)
	require.NoError(t, err)
	assert.Empty(t, rec.Header().Get("X-Cache"), "mutation must orphan cached listings")
}

func TestCacheMiddlewareKeepsOtherFamilies(t *testing.T) {
	srv := newCacheTestServer(newMemStore())

	get := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int{"n": 1})
	}
	post := func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]int{"n": 2})
	}

	_, err := do(t, srv, http.MethodGet, "/volunteers", get)
	require.NoError(t, err)

	_, err = do(t, srv, http.MethodPost, "/churches", post)
	require.NoError(t, err)

	rec, err := do(t, srv, http.MethodGet, "/volunteers", get)
	require.NoError(t, err)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestCacheMiddlewareDoesNotInvalidateOnFailure(t *testing.T) {
	srv := newCacheTestServer(newMemStore())

	get := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int{"n": 1})
	}
	failingPost := func(c echo.Context) error {
		return errs.NewBadRequestError("nope", true, nil, nil, nil)
	}

	_, err := do(t, srv, http.MethodGet, "/churches", get)
	require.NoError(t, err)

	_, err = do(t, srv, http.MethodPost, "/churches", failingPost)
	require.Error(t, err)

	rec, err := do(t, srv, http.MethodGet, "/churches", get)
	require.NoError(t, err)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"), "failed mutations must leave the cache intact")
}

func TestCacheMiddlewareDoesNotStoreErrorResponses(t *testing.T) {
	srv := newCacheTestServer(newMemStore())

	calls := 0
	notFound := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusNotFound, map[string]string{"message": "missing"})
	}

	_, err := do(t, srv, http.MethodGet, "/churches/unknown", notFound)
	require.NoError(t, err)
	_, err = do(t, srv, http.MethodGet, "/churches/unknown", notFound)
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "non-2xx responses must not be cached")
}
