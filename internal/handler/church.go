package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/parishkit/parishkit/internal/model"
	"github.com/parishkit/parishkit/internal/repository"
	"github.com/parishkit/parishkit/internal/server"
	"github.com/parishkit/parishkit/internal/service"
	"github.com/parishkit/parishkit/internal/validation"
)

// ChurchHandler exposes the /churches resource.
type ChurchHandler struct {
	Handler
	churches *service.ChurchService
}

func NewChurchHandler(s *server.Server, services *service.Services) *ChurchHandler {
	return &ChurchHandler{
		Handler:  NewHandler(s),
		churches: services.Churches,
	}
}

// CreateChurchRequest is the payload for creating a church; it doubles as
// the body of the update request.
type CreateChurchRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=120"`
	City    string  `json:"city" validate:"required,min=2,max=80"`
	Address *string `json:"address" validate:"omitempty,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
}

func (r *CreateChurchRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (r *CreateChurchRequest) input() service.ChurchInput {
	return service.ChurchInput{
		Name:    r.Name,
		City:    r.City,
		Address: r.Address,
		Phone:   r.Phone,
	}
}

// UpdateChurchRequest binds the :id path parameter together with the body.
type UpdateChurchRequest struct {
	CreateChurchRequest
	ID string `param:"id" validate:"required,uuid"`
}

func (r *UpdateChurchRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (h *ChurchHandler) List(c echo.Context, req *ListRequest) (repository.Page[model.Church], error) {
	page, err := h.churches.List(c.Request().Context(), req.PageParams(), nil)
	if err != nil {
		return page, err
	}
	setPageHeaders(c, page)
	return page, nil
}

func (h *ChurchHandler) ListDeleted(c echo.Context, req *ListRequest) (repository.Page[model.Church], error) {
	page, err := h.churches.ListDeleted(c.Request().Context(), req.PageParams(), nil)
	if err != nil {
		return page, err
	}
	setPageHeaders(c, page)
	return page, nil
}

func (h *ChurchHandler) Get(c echo.Context, req *IDRequest) (model.Church, error) {
	return h.churches.Get(c.Request().Context(), req.UUID())
}

func (h *ChurchHandler) Create(c echo.Context, req *CreateChurchRequest) (model.Church, error) {
	return h.churches.Create(c.Request().Context(), req.input())
}

func (h *ChurchHandler) Update(c echo.Context, req *UpdateChurchRequest) (model.Church, error) {
	return h.churches.Update(c.Request().Context(), mustUUID(req.ID), req.input())
}

func (h *ChurchHandler) Delete(c echo.Context, req *IDRequest) (model.Church, error) {
	return h.churches.Delete(c.Request().Context(), req.UUID())
}

func (h *ChurchHandler) Restore(c echo.Context, req *IDsRequest) (RestoreResponse, error) {
	n, err := h.churches.Restore(c.Request().Context(), req.UUIDs())
	return RestoreResponse{Restored: n}, err
}

func (h *ChurchHandler) Remove(c echo.Context, req *IDsRequest) (RemoveResponse, error) {
	n, err := h.churches.HardRemove(c.Request().Context(), req.UUIDs())
	return RemoveResponse{Removed: n}, err
}
