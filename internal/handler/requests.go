package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/parishkit/parishkit/internal/repository"
	"github.com/parishkit/parishkit/internal/validation"
)

// ListRequest carries the pagination query parameters shared by every
// listing endpoint. Values arrive as raw strings and are normalized by the
// repository layer: bad input falls back to defaults instead of erroring.
type ListRequest struct {
	Page       string `query:"page"`
	PerPage    string `query:"perPage"`
	OrderKey   string `query:"orderKey"`
	OrderValue string `query:"orderValue"`
}

func (r *ListRequest) Validate() error {
	return nil
}

// PageParams converts the raw query values into normalized-on-use params.
func (r *ListRequest) PageParams() repository.PageParams {
	return repository.ParsePageParams(r.Page, r.PerPage, r.OrderKey, r.OrderValue)
}

// ScopedListRequest extends ListRequest with an optional church filter,
// used by resources owned by a church.
type ScopedListRequest struct {
	ListRequest
	ChurchID string `query:"churchId" validate:"omitempty,uuid"`
}

func (r *ScopedListRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Filter builds the repository filter for the optional church scope.
func (r *ScopedListRequest) Filter() repository.Filter {
	if r.ChurchID == "" {
		return nil
	}
	return repository.Where("church_id", mustUUID(r.ChurchID))
}

// IDRequest identifies a single entity through the :id path parameter.
type IDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *IDRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (r *IDRequest) UUID() uuid.UUID {
	return mustUUID(r.ID)
}

// IDsRequest is the bulk input shape for restore and hard-remove.
type IDsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

func (r *IDsRequest) Validate() error {
	return validation.Validator.Struct(r)
}

func (r *IDsRequest) UUIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.IDs))
	for _, s := range r.IDs {
		ids = append(ids, mustUUID(s))
	}
	return ids
}

// RestoreResponse reports how many entities a restore touched.
type RestoreResponse struct {
	Restored int64 `json:"restored"`
}

// RemoveResponse reports how many entities a hard-remove erased.
type RemoveResponse struct {
	Removed int64 `json:"removed"`
}

// mustUUID parses an id that validation has already accepted.
func mustUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}

// setPageHeaders exposes the listing totals as response headers alongside
// the body.
func setPageHeaders[T any](c echo.Context, page repository.Page[T]) {
	c.Response().Header().Set("X-Total-Count", strconv.FormatInt(page.TotalCount, 10))
	c.Response().Header().Set("X-Total-Pages", strconv.FormatInt(page.TotalPages, 10))
}
