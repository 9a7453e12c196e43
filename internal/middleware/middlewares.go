// Package middleware contains the HTTP middleware stack: CORS, recovery,
// request logging, request ids, the request-scoped logger, the response
// cache, and the global error funnel.
package middleware

import (
	"github.com/parishkit/parishkit/internal/server"
)

// Middlewares groups all middleware components so router setup receives a
// single wired object instead of many.
type Middlewares struct {
	// Global holds middleware applied to the whole API:
	// CORS, request logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip).
	ContextEnhancer *ContextEnhancer

	// Cache serves cached GET responses and invalidates resource families
	// after successful mutations.
	Cache *CacheMiddleware
}

// NewMiddlewares constructs all middleware components from the application
// container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Cache:           NewCacheMiddleware(s),
	}
}
