// Package router initializes the HTTP router (using Echo).
//
// It wires the middleware stack in order and maps the API route groups to
// their handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parishkit/parishkit/internal/handler"
	"github.com/parishkit/parishkit/internal/middleware"
)

// New builds the Echo instance with the full middleware chain and all
// routes registered.
//
// Middleware order matters: the request id must exist before the
// context enhancer builds the request-scoped logger, and the response cache
// runs last so cached hits still carry request ids and log lines.
func New(h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	e.Use(middleware.RequestID())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Global.CORS())
	e.Use(mw.Global.RequestLogger())
	e.Use(mw.Global.Recover())
	e.Use(mw.Global.Secure())
	e.Use(mw.Cache.Cache())

	registerSystemRoutes(e, h)
	registerChurchRoutes(e, h)
	registerVolunteerRoutes(e, h)
	registerOfferRoutes(e, h)
	registerAnnouncementRoutes(e, h)

	return e
}

func registerChurchRoutes(e *echo.Echo, h *handler.Handlers) {
	ch := h.Churches
	g := e.Group("/churches")

	g.GET("", handler.Handle(ch.Handler, ch.List, http.StatusOK))
	g.GET("/deleted", handler.Handle(ch.Handler, ch.ListDeleted, http.StatusOK))
	g.GET("/:id", handler.Handle(ch.Handler, ch.Get, http.StatusOK))
	g.POST("", handler.Handle(ch.Handler, ch.Create, http.StatusCreated))
	g.PUT("/:id", handler.Handle(ch.Handler, ch.Update, http.StatusOK))
	g.DELETE("/:id", handler.Handle(ch.Handler, ch.Delete, http.StatusOK))
	g.POST("/restore", handler.Handle(ch.Handler, ch.Restore, http.StatusOK))
	g.POST("/remove", handler.Handle(ch.Handler, ch.Remove, http.StatusOK))
}

func registerVolunteerRoutes(e *echo.Echo, h *handler.Handlers) {
	vh := h.Volunteers
	g := e.Group("/volunteers")

	g.GET("", handler.Handle(vh.Handler, vh.List, http.StatusOK))
	g.GET("/deleted", handler.Handle(vh.Handler, vh.ListDeleted, http.StatusOK))
	g.GET("/:id", handler.Handle(vh.Handler, vh.Get, http.StatusOK))
	g.POST("", handler.Handle(vh.Handler, vh.Create, http.StatusCreated))
	g.PUT("/:id", handler.Handle(vh.Handler, vh.Update, http.StatusOK))
	g.DELETE("/:id", handler.Handle(vh.Handler, vh.Delete, http.StatusOK))
	g.POST("/restore", handler.Handle(vh.Handler, vh.Restore, http.StatusOK))
	g.POST("/remove", handler.Handle(vh.Handler, vh.Remove, http.StatusOK))
}

func registerOfferRoutes(e *echo.Echo, h *handler.Handlers) {
	oh := h.Offers
	g := e.Group("/offers")

	g.GET("", handler.Handle(oh.Handler, oh.List, http.StatusOK))
	g.GET("/deleted", handler.Handle(oh.Handler, oh.ListDeleted, http.StatusOK))
	g.GET("/:id", handler.Handle(oh.Handler, oh.Get, http.StatusOK))
	g.POST("", handler.Handle(oh.Handler, oh.Create, http.StatusCreated))
	g.PUT("/:id", handler.Handle(oh.Handler, oh.Update, http.StatusOK))
	g.DELETE("/:id", handler.Handle(oh.Handler, oh.Delete, http.StatusOK))
	g.POST("/restore", handler.Handle(oh.Handler, oh.Restore, http.StatusOK))
	g.POST("/remove", handler.Handle(oh.Handler, oh.Remove, http.StatusOK))
}

func registerAnnouncementRoutes(e *echo.Echo, h *handler.Handlers) {
	ah := h.Announcements
	g := e.Group("/announcements")

	g.GET("", handler.Handle(ah.Handler, ah.List, http.StatusOK))
	g.GET("/deleted", handler.Handle(ah.Handler, ah.ListDeleted, http.StatusOK))
	g.GET("/:id", handler.Handle(ah.Handler, ah.Get, http.StatusOK))
	g.POST("", handler.Handle(ah.Handler, ah.Create, http.StatusCreated))
	g.PUT("/:id", handler.Handle(ah.Handler, ah.Update, http.StatusOK))
	g.DELETE("/:id", handler.Handle(ah.Handler, ah.Delete, http.StatusOK))
	g.POST("/restore", handler.Handle(ah.Handler, ah.Restore, http.StatusOK))
	g.POST("/remove", handler.Handle(ah.Handler, ah.Remove, http.StatusOK))
}
