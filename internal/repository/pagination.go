package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
)

// Pagination defaults and bounds. PerPage is caller-controlled but capped
// so a single request cannot drag an entire table into memory. MaxPage keeps
// the row offset within int range for any allowed PerPage; a larger page
// number falls back to the default like any other out-of-range input.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 200
	MaxPage        = math.MaxInt / MaxPerPage

	DefaultOrderKey   = "created_at"
	DefaultOrderValue = "desc"
)

// PageParams describes one listing request. Zero values mean "use default";
// out-of-range values are normalized, never rejected.
type PageParams struct {
	Page           int
	PerPage        int
	OrderKey       string
	OrderValue     string
	IncludeDeleted bool
}

// Page is the listing response shape shared by every resource.
type Page[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

// ParsePageParams builds PageParams from raw query strings. Non-numeric or
// out-of-range input falls back to defaults rather than raising an error.
func ParsePageParams(page, perPage, orderKey, orderValue string) PageParams {
	p := PageParams{
		OrderKey:   orderKey,
		OrderValue: orderValue,
	}
	if n, err := strconv.Atoi(page); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(perPage); err == nil {
		p.PerPage = n
	}
	return p
}

// normalize applies defaults, bounds and the order-key whitelist. validCols
// is the repository's column set; an order key outside it (after camelCase
// conversion) falls back to created_at, which keeps user input out of the
// ORDER BY clause.
func (p PageParams) normalize(validCols []string) PageParams {
	if p.Page < 1 || p.Page > MaxPage {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}

	key := camelToSnake(p.OrderKey)
	valid := false
	for _, col := range validCols {
		if col == key {
			valid = true
			break
		}
	}
	if !valid {
		key = DefaultOrderKey
	}
	p.OrderKey = key

	switch strings.ToLower(p.OrderValue) {
	case "asc":
		p.OrderValue = "asc"
	case "desc":
		p.OrderValue = "desc"
	default:
		p.OrderValue = DefaultOrderValue
	}

	return p
}

// skip computes the row offset for the normalized page.
func (p PageParams) skip() int {
	if p.Page == 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// totalPages derives the page count. Zero rows means zero pages, not one.
func totalPages(totalCount int64, perPage int) int64 {
	if totalCount == 0 {
		return 0
	}
	return (totalCount + int64(perPage) - 1) / int64(perPage)
}

// camelToSnake converts API-facing order keys ("createdAt") into column
// names ("created_at"). Already-snake input passes through unchanged.
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Paginate executes a bounded, ordered listing plus a matching count.
//
// Both queries run inside one transaction so the returned page and
// TotalCount are computed against the same snapshot and cannot diverge
// under concurrent writes. The visibility filter is identical for both:
// soft-deleted rows are excluded unless IncludeDeleted is set or the
// caller's filter already constrains deleted.
func (r *Repo[T]) Paginate(ctx context.Context, params PageParams, f Filter) (Page[T], error) {
	p := params.normalize(r.cols)

	scoped := f
	if !p.IncludeDeleted {
		scoped = r.scope(f)
	}

	orderBy := fmt.Sprintf("%s %s", p.OrderKey, strings.ToUpper(p.OrderValue))
	dataSQL, dataArgs := r.buildFindMany(scoped, orderBy, p.PerPage, p.skip())
	countSQL, countArgs := r.buildCount(scoped)

	var page Page[T]

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return page, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, dataSQL, dataArgs...)
	if err != nil {
		return page, err
	}

	data, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return page, err
	}

	var count int64
	if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return page, err
	}

	if err := tx.Commit(ctx); err != nil {
		return page, err
	}

	if data == nil {
		data = []T{}
	}

	page.Data = data
	page.TotalCount = count
	page.TotalPages = totalPages(count, p.PerPage)
	return page, nil
}
