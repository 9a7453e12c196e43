// Package handler is the HTTP layer: it parses and validates requests,
// calls the service layer, and writes responses. Errors are returned, not
// written; the global error handler formats them.
package handler

import (
	"github.com/parishkit/parishkit/internal/server"
	"github.com/parishkit/parishkit/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives a single wired
// object instead of many.
type Handlers struct {
	Health        *HealthHandler
	Churches      *ChurchHandler
	Volunteers    *VolunteerHandler
	Offers        *OfferHandler
	Announcements *AnnouncementHandler
}

// NewHandlers constructs the handler container on top of the services.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		Churches:      NewChurchHandler(s, services),
		Volunteers:    NewVolunteerHandler(s, services),
		Offers:        NewOfferHandler(s, services),
		Announcements: NewAnnouncementHandler(s, services),
	}
}
