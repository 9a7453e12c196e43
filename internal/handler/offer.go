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

// OfferHandler exposes the /offers resource.
type OfferHandler struct {
	Handler
	offers *service.OfferService
}

func NewOfferHandler(s *server.Server, services *service.Services) *OfferHandler {
	return &OfferHandler{
		Handler: NewHandler(s),
		offers:  services.Offers,
	}
}

// CreateOfferRequest is the payload for registering an offering; it doubles
// as the body of the update request. Amounts travel as integer cents so no
// floating point ever touches money.
type CreateOfferRequest struct {
	ChurchID    string    `json:"churchId" validate:"required,uuid"`
	AmountCents int64     `json:"amountCents" validate:"required,gt=0"`
	Currency    string    `json:"currency" validate:"required,len=3"`
	Kind        string    `json:"kind" validate:"required,oneof=tithe offering donation campaign"`
	OfferedAt   time.Time `json:"offeredAt" validate:"required"`
	Note        *string   `json:"note" validate:"omitempty,max=500"`
}

func (r *CreateOfferRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (r *CreateOfferRequest) input() service.OfferInput {
	return service.OfferInput{
		ChurchID:    mustUUID(r.ChurchID),
		AmountCents: r.AmountCents,
		Currency:    r.Currency,
		Kind:        r.Kind,
		OfferedAt:   r.OfferedAt,
		Note:        r.Note,
	}
}

// UpdateOfferRequest binds the :id path parameter together with the body.
type UpdateOfferRequest struct {
	CreateOfferRequest
	ID string `param:"id" validate:"required,uuid"`
}

func (r *UpdateOfferRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (h *OfferHandler) List(c echo.Context, req *ScopedListRequest) (repository.Page[model.Offer], error) {
	page, err := h.offers.List(c.Request().Context(), req.PageParams(), req.Filter())
	if err != nil {
		return page, err
	}
	setPageHeaders(c, page)
	return page, nil
}

func (h *OfferHandler) ListDeleted(c echo.Context, req *ScopedListRequest) (repository.Page[model.Offer], error) {
	page, err := h.offers.ListDeleted(c.Request().Context(), req.PageParams(), req.Filter())
	if err != nil {
		return page, err
	}
	setPageHeaders(c, page)
	return page, nil
}

func (h *OfferHandler) Get(c echo.Context, req *IDRequest) (model.Offer, error) {
	return h.offers.Get(c.Request().Context(), req.UUID())
}

func (h *OfferHandler) Create(c echo.Context, req *CreateOfferRequest) (model.Offer, error) {
	return h.offers.Create(c.Request().Context(), req.input())
}

func (h *OfferHandler) Update(c echo.Context, req *UpdateOfferRequest) (model.Offer, error) {
	return h.offers.Update(c.Request().Context(), mustUUID(req.ID), req.input())
}

func (h *OfferHandler) Delete(c echo.Context, req *IDRequest) (model.Offer, error) {
	return h.offers.Delete(c.Request().Context(), req.UUID())
}

func (h *OfferHandler) Restore(c echo.Context, req *IDsRequest) (RestoreResponse, error) {
	n, err := h.offers.Restore(c.Request().Context(), req.UUIDs())
	return RestoreResponse{Restored: n}, err
}

func (h *OfferHandler) Remove(c echo.Context, req *IDsRequest) (RemoveResponse, error) {
	n, err := h.offers.HardRemove(c.Request().Context(), req.UUIDs())
	return RemoveResponse{Removed: n}, err
}
