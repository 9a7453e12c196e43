package middleware

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parishkit/parishkit/internal/cache"
	"github.com/parishkit/parishkit/internal/repository"
	"github.com/parishkit/parishkit/internal/server"
)

// CacheMiddleware serves GET responses from the shared response cache and
// invalidates the affected resource family after successful mutations.
type CacheMiddleware struct {
	server *server.Server
}

// cachedHeaders are the response headers replayed on a cache hit. Listing
// totals travel as headers alongside the body, so dropping them on a hit
// would change what the client sees between the first response and a replay.
var cachedHeaders = []string{"X-Total-Count", "X-Total-Pages"}

func NewCacheMiddleware(s *server.Server) *CacheMiddleware {
	return &CacheMiddleware{server: s}
}

// Cache is the middleware entry point. Paths whose first segment is not a
// registered resource family (e.g. /status) pass through untouched.
//
// GET requests: a hit replays the stored response with X-Cache: HIT; a miss
// runs the handler, and the rendered 2xx response is stored under the
// family's current version.
//
// Mutating requests: when the handler completes without error and with a
// 2xx status, the family's cache version is bumped, orphaning every cached
// variant of its listings at once. Failed mutations touch nothing, and a
// failed invalidation is logged, never surfaced: the response is already
// prepared and a stale entry dies by TTL anyway.
func (m *CacheMiddleware) Cache() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			family := cache.Family(req.URL.Path)
			if !repository.IsRegistered(family) {
				return next(c)
			}

			ctx := req.Context()

			if req.Method == http.MethodGet {
				uri := req.URL.RequestURI()

				if entry, ok := m.server.Cache.GetResponse(ctx, family, req.Method, uri); ok {
					for name, value := range entry.Header {
						c.Response().Header().Set(name, value)
					}
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(entry.Status, entry.ContentType, entry.Body)
				}

				rec := newResponseRecorder(c.Response().Writer)
				c.Response().Writer = rec

				if err := next(c); err != nil {
					return err
				}

				status := c.Response().Status
				if status >= 200 && status < 300 {
					var header map[string]string
					for _, name := range cachedHeaders {
						if value := c.Response().Header().Get(name); value != "" {
							if header == nil {
								header = make(map[string]string, len(cachedHeaders))
							}
							header[name] = value
						}
					}

					m.server.Cache.SetResponse(ctx, family, req.Method, uri, &cache.Entry{
						Status:      status,
						ContentType: c.Response().Header().Get(echo.HeaderContentType),
						Header:      header,
						Body:        rec.body.Bytes(),
					})
				}
				return nil
			}

			if err := next(c); err != nil {
				return err
			}

			status := c.Response().Status
			if status >= 200 && status < 300 {
				if err := m.server.Cache.Invalidate(ctx, family); err != nil {
					GetLogger(c).Warn().Err(err).Str("family", family).Msg("cache invalidation failed")
				}
			}
			return nil
		}
	}
}

// responseRecorder tees everything written to the client into a buffer so a
// successful response can be stored after the handler returns.
type responseRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w}
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
