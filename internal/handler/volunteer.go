package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/parishkit/parishkit/internal/model"
	"github.com/parishkit/parishkit/internal/repository"
	"github.com/parishkit/parishkit/internal/server"
	"github.com/parishkit/parishkit/internal/service"
	"github.com/parishkit/parishkit/internal/validation"
)

// VolunteerHandler exposes the /volunteers resource.
type VolunteerHandler struct {
	Handler
	volunteers *service.VolunteerService
}

func NewVolunteerHandler(s *server.Server, services *service.Services) *VolunteerHandler {
	return &VolunteerHandler{
		Handler:    NewHandler(s),
		volunteers: services.Volunteers,
	}
}

// CreateVolunteerRequest is the payload for creating a volunteer; it
// doubles as the body of the update request.
type CreateVolunteerRequest struct {
	ChurchID string  `json:"churchId" validate:"required,uuid"`
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Ministry *string `json:"ministry" validate:"omitempty,max=80"`
}

func (r *CreateVolunteerRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (r *CreateVolunteerRequest) input() service.VolunteerInput {
	return service.VolunteerInput{
		ChurchID: mustUUID(r.ChurchID),
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Ministry: r.Ministry,
	}
}

// UpdateVolunteerRequest binds the :id path parameter together with the body.
type UpdateVolunteerRequest struct {
	CreateVolunteerRequest
	ID string `param:"id" validate:"required,uuid"`
}

func (r *UpdateVolunteerRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (h *VolunteerHandler) List(c echo.Context, req *ScopedListRequest) (repository.Page[model.Volunteer], error) {
	page, err := h.volunteers.List(c.Request().Context(), req.PageParams(), req.Filter())
	if err != nil {
		return page, err
	}
	setPageHeaders(c, page)
	return page, nil
}

func (h *VolunteerHandler) ListDeleted(c echo.Context, req *ScopedListRequest) (repository.Page[model.Volunteer], error) {
	page, err := h.volunteers.ListDeleted(c.Request().Context(), req.PageParams(), req.Filter())
	if err != nil {
		return page, err
	}
	setPageHeaders(c, page)
	return page, nil
}

func (h *VolunteerHandler) Get(c echo.Context, req *IDRequest) (model.Volunteer, error) {
	return h.volunteers.Get(c.Request().Context(), req.UUID())
}

func (h *VolunteerHandler) Create(c echo.Context, req *CreateVolunteerRequest) (model.Volunteer, error) {
	return h.volunteers.Create(c.Request().Context(), req.input())
}

func (h *VolunteerHandler) Update(c echo.Context, req *UpdateVolunteerRequest) (model.Volunteer, error) {
	return h.volunteers.Update(c.Request().Context(), mustUUID(req.ID), req.input())
}

func (h *VolunteerHandler) Delete(c echo.Context, req *IDRequest) (model.Volunteer, error) {
	return h.volunteers.Delete(c.Request().Context(), req.UUID())
}

func (h *VolunteerHandler) Restore(c echo.Context, req *IDsRequest) (RestoreResponse, error) {
	n, err := h.volunteers.Restore(c.Request().Context(), req.UUIDs())
	return RestoreResponse{Restored: n}, err
}

func (h *VolunteerHandler) Remove(c echo.Context, req *IDsRequest) (RemoveResponse, error) {
	n, err := h.volunteers.HardRemove(c.Request().Context(), req.UUIDs())
	return RemoveResponse{Removed: n}, err
}
