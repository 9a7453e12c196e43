// Package repository is the generic data-access layer shared by every
// resource in the application.
//
// A Repo[T] wraps one table and gives resource services plain CRUD
// semantics while transparently enforcing the soft-delete convention:
// reads and counts only see rows whose deleted column is NULL, and deletes
// are rewritten into updates that stamp that column. The Unscoped view
// bypasses all rewriting and is the only way to read deleted rows, restore
// them, or physically erase them.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"

	"github.com/parishkit/parishkit/internal/sqlerr"
)

// deletedCol is the soft-delete marker column every owned table carries.
const deletedCol = "deleted"

// Querier is the subset of pgx executed against; both *pgxpool.Pool and
// pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// DB extends Querier with the ability to open a transaction. The pagination
// engine needs one so its data and count queries see the same snapshot.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ColVal is one column assignment for Create/Update calls. A slice keeps
// assignment order deterministic, unlike a map.
type ColVal struct {
	Col string
	Val any
}

// Cols is an ordered list of column assignments.
type Cols []ColVal

func (c Cols) has(col string) bool {
	for _, cv := range c {
		if cv.Col == col {
			return true
		}
	}
	return false
}

// Repo is a generic repository over one table. T must be a struct whose
// db-tagged fields cover the selected columns; rows are scanned with
// pgx.RowToStructByNameLax.
type Repo[T any] struct {
	db     DB
	table  string
	cols   []string
	bypass bool
}

// New constructs a repository for the given table. cols is the full
// selectable column list, including the Base columns.
func New[T any](db DB, table string, cols []string) *Repo[T] {
	return &Repo[T]{
		db:    db,
		table: table,
		cols:  cols,
	}
}

// Table reports the table name. Route registration and cache invalidation
// use it as the resource family name.
func (r *Repo[T]) Table() string {
	return r.table
}

// Unscoped returns a view of the repository that bypasses all soft-delete
// rewriting: reads see deleted rows and Delete physically removes rows.
func (r *Repo[T]) Unscoped() *Repo[T] {
	clone := *r
	clone.bypass = true
	return &clone
}

// scope injects the deleted IS NULL visibility condition into read filters.
// The condition is only added when the caller has not expressed any intent
// about the deleted column, so explicit trash queries pass through as-is.
func (r *Repo[T]) scope(f Filter) Filter {
	if r.bypass || f.Has(deletedCol) {
		return f
	}
	scoped := make(Filter, len(f), len(f)+1)
	copy(scoped, f)
	return append(scoped, Cond{Col: deletedCol, op: opIsNull})
}

func (r *Repo[T]) selectList() string {
	return strings.Join(r.cols, ", ")
}

func whereClause(body string) string {
	if body == "" {
		return ""
	}
	return " WHERE " + body
}

// buildFind renders the single-read query for the (already scoped) filter.
func (r *Repo[T]) buildFind(f Filter) (string, []any) {
	body, args := f.render(1)
	sql := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1", r.selectList(), r.table, whereClause(body))
	return sql, args
}

// Find returns the first row matching the filter. Soft-deleted rows are
// invisible unless the filter mentions deleted or the repo is unscoped.
// A miss surfaces pgx.ErrNoRows annotated with the table name.
func (r *Repo[T]) Find(ctx context.Context, f Filter) (T, error) {
	sql, args := r.buildFind(r.scope(f))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, err
	}

	entity, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		var zero T
		return zero, sqlerr.WrapNoRows(r.table, err)
	}
	return entity, nil
}

// FindByID is shorthand for Find on the primary key.
func (r *Repo[T]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	return r.Find(ctx, Where("id", id))
}

// buildFindMany renders the listing query. order, limit and offset are
// optional; zero values omit the corresponding clause.
func (r *Repo[T]) buildFindMany(f Filter, orderBy string, limit, offset int) (string, []any) {
	body, args := f.render(1)

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s%s", r.selectList(), r.table, whereClause(body))
	if orderBy != "" {
		b.WriteString(" ORDER BY " + orderBy)
	}
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	if offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", offset)
	}
	return b.String(), args
}

// FindMany returns all rows matching the filter, newest first, applying the
// same visibility rule as Find.
func (r *Repo[T]) FindMany(ctx context.Context, f Filter) ([]T, error) {
	sql, args := r.buildFindMany(r.scope(f), "created_at DESC", 0, 0)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
}

// buildCount renders the count query for the (already scoped) filter.
func (r *Repo[T]) buildCount(f Filter) (string, []any) {
	body, args := f.render(1)
	return fmt.Sprintf("SELECT count(*) FROM %s%s", r.table, whereClause(body)), args
}

// Count returns the number of rows matching the filter under the same
// visibility rule as FindMany, so listings and totals always agree.
func (r *Repo[T]) Count(ctx context.Context, f Filter) (int64, error) {
	sql, args := r.buildCount(r.scope(f))

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// buildCreate renders the insert statement.
func (r *Repo[T]) buildCreate(cols Cols) (string, []any) {
	names := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))

	for i, cv := range cols {
		names = append(names, cv.Col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, cv.Val)
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.table,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
		r.selectList(),
	)
	return sql, args
}

// Create inserts a row and returns it. Identity, timestamps and the NULL
// deleted marker come from column defaults, so a fresh entity is always
// active.
func (r *Repo[T]) Create(ctx context.Context, cols Cols) (T, error) {
	sql, args := r.buildCreate(cols)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
}

// buildUpdate renders the update statement. updated_at is always stamped.
func (r *Repo[T]) buildUpdate(f Filter, cols Cols) (string, []any) {
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols))

	n := 1
	for _, cv := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", cv.Col, n))
		args = append(args, cv.Val)
		n++
	}
	sets = append(sets, "updated_at = now()")

	body, whereArgs := f.render(n)
	args = append(args, whereArgs...)

	sql := fmt.Sprintf("UPDATE %s SET %s%s RETURNING %s",
		r.table,
		strings.Join(sets, ", "),
		whereClause(body),
		r.selectList(),
	)
	return sql, args
}

// Update mutates the row identified by the filter and returns it.
// A miss surfaces pgx.ErrNoRows annotated with the table name.
func (r *Repo[T]) Update(ctx context.Context, f Filter, cols Cols) (T, error) {
	sql, args := r.buildUpdate(f, cols)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, err
	}

	entity, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		var zero T
		return zero, sqlerr.WrapNoRows(r.table, err)
	}
	return entity, nil
}

// buildDelete renders the delete statement: a soft-delete update in the
// normal case, a physical DELETE when the repo is unscoped. The caller's
// filter is preserved unchanged either way.
func (r *Repo[T]) buildDelete(f Filter) (string, []any) {
	if r.bypass {
		body, args := f.render(1)
		return fmt.Sprintf("DELETE FROM %s%s RETURNING %s", r.table, whereClause(body), r.selectList()), args
	}

	body, args := f.render(1)
	sql := fmt.Sprintf("UPDATE %s SET %s = now(), updated_at = now()%s RETURNING %s",
		r.table, deletedCol, whereClause(body), r.selectList())
	return sql, args
}

// Delete removes the row identified by the filter and returns its final
// state. Through the normal path the row is soft-deleted: it stays in the
// store with deleted stamped to the current time.
func (r *Repo[T]) Delete(ctx context.Context, f Filter) (T, error) {
	sql, args := r.buildDelete(f)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, err
	}

	entity, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		var zero T
		return zero, sqlerr.WrapNoRows(r.table, err)
	}
	return entity, nil
}

// buildDeleteMany renders the bulk delete. Caller-supplied extra columns
// are kept and the deleted stamp is merged in, not overwritten.
func (r *Repo[T]) buildDeleteMany(f Filter, extra Cols) (string, []any) {
	if r.bypass {
		body, args := f.render(1)
		return fmt.Sprintf("DELETE FROM %s%s", r.table, whereClause(body)), args
	}

	sets := make([]string, 0, len(extra)+2)
	args := make([]any, 0, len(extra))

	n := 1
	for _, cv := range extra {
		sets = append(sets, fmt.Sprintf("%s = $%d", cv.Col, n))
		args = append(args, cv.Val)
		n++
	}
	if !extra.has(deletedCol) {
		sets = append(sets, deletedCol+" = now()")
	}
	sets = append(sets, "updated_at = now()")

	body, whereArgs := f.render(n)
	args = append(args, whereArgs...)

	sql := fmt.Sprintf("UPDATE %s SET %s%s", r.table, strings.Join(sets, ", "), whereClause(body))
	return sql, args
}

// DeleteMany removes every row matching the filter and reports how many
// were affected. extra may carry additional column assignments to apply in
// the same statement.
func (r *Repo[T]) DeleteMany(ctx context.Context, f Filter, extra Cols) (int64, error) {
	sql, args := r.buildDeleteMany(f, extra)

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Restore clears the deleted marker for the named ids. It always runs on
// the bypass path since the rows it targets are invisible to scoped reads.
// Restoring an already-active id is a no-op, so the call is idempotent.
func (r *Repo[T]) Restore(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sql := fmt.Sprintf("UPDATE %s SET %s = NULL, updated_at = now() WHERE id = ANY($1)",
		r.table, deletedCol)

	tag, err := r.db.Exec(ctx, sql, lo.Uniq(ids))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// HardRemove physically deletes the named rows, active or not, bypassing
// soft-delete entirely. Removing an unknown id affects zero rows.
func (r *Repo[T]) HardRemove(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1)", r.table)

	tag, err := r.db.Exec(ctx, sql, lo.Uniq(ids))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
