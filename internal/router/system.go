package router

import (
	"github.com/labstack/echo/v4"

	"github.com/parishkit/parishkit/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of business
// logic, kept in their own file.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by Kubernetes/monitors).
	e.GET("/status", h.Health.CheckHealth)
}
