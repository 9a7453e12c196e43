package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parishkit/parishkit/internal/model"
	"github.com/parishkit/parishkit/internal/repository"
	"github.com/parishkit/parishkit/internal/server"
	"github.com/parishkit/parishkit/internal/service"
	"github.com/parishkit/parishkit/internal/validation"
)

// AnnouncementHandler exposes the /announcements resource.
type AnnouncementHandler struct {
	Handler
	announcements *service.AnnouncementService
}

func NewAnnouncementHandler(s *server.Server, services *service.Services) *AnnouncementHandler {
	return &AnnouncementHandler{
		Handler:       NewHandler(s),
		announcements: services.Announcements,
	}
}

// CreateAnnouncementRequest is the payload for publishing an announcement;
// it doubles as the body of the update request. PublishAt defaults to the
// time of creation when omitted.
type CreateAnnouncementRequest struct {
	ChurchID  string     `json:"churchId" validate:"required,uuid"`
	Title     string     `json:"title" validate:"required,min=2,max=160"`
	Body      string     `json:"body" validate:"required"`
	PublishAt *time.Time `json:"publishAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (r *CreateAnnouncementRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (r *CreateAnnouncementRequest) input() service.AnnouncementInput {
	publishAt := time.Now().UTC()
	if r.PublishAt != nil {
		publishAt = *r.PublishAt
	}
	return service.AnnouncementInput{
		ChurchID:  mustUUID(r.ChurchID),
		Title:     r.Title,
		Body:      r.Body,
		PublishAt: publishAt,
		ExpiresAt: r.ExpiresAt,
	}
}

// UpdateAnnouncementRequest binds the :id path parameter together with the body.
type UpdateAnnouncementRequest struct {
	CreateAnnouncementRequest
	ID string `param:"id" validate:"required,uuid"`
}

func (r *UpdateAnnouncementRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (h *AnnouncementHandler) List(c echo.Context, req *ScopedListRequest) (repository.Page[model.Announcement], error) {
	page, err := h.announcements.List(c.Request().Context(), req.PageParams(), req.Filter())
	if err != nil {
		return page, err
	}
	setPageHeaders(c, page)
	return page, nil
}

func (h *AnnouncementHandler) ListDeleted(c echo.Context, req *ScopedListRequest) (repository.Page[model.Announcement], error) {
	page, err := h.announcements.ListDeleted(c.Request().Context(), req.PageParams(), req.Filter())
	if err != nil {
		return page, err
	}
	setPageHeaders(c, page)
	return page, nil
}

func (h *AnnouncementHandler) Get(c echo.Context, req *IDRequest) (model.Announcement, error) {
	return h.announcements.Get(c.Request().Context(), req.UUID())
}

func (h *AnnouncementHandler) Create(c echo.Context, req *CreateAnnouncementRequest) (model.Announcement, error) {
	return h.announcements.Create(c.Request().Context(), req.input())
}

func (h *AnnouncementHandler) Update(c echo.Context, req *UpdateAnnouncementRequest) (model.Announcement, error) {
	return h.announcements.Update(c.Request().Context(), mustUUID(req.ID), req.input())
}

func (h *AnnouncementHandler) Delete(c echo.Context, req *IDRequest) (model.Announcement, error) {
	return h.announcements.Delete(c.Request().Context(), req.UUID())
}

func (h *AnnouncementHandler) Restore(c echo.Context, req *IDsRequest) (RestoreResponse, error) {
	n, err := h.announcements.Restore(c.Request().Context(), req.UUIDs())
	return RestoreResponse{Restored: n}, err
}

func (h *AnnouncementHandler) Remove(c echo.Context, req *IDsRequest) (RemoveResponse, error) {
	n, err := h.announcements.HardRemove(c.Request().Context(), req.UUIDs())
	return RemoveResponse{Removed: n}, err
}
