package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkit/parishkit/internal/model"
)

func newTestRepo() *Repo[model.Church] {
	return New[model.Church](nil, "churches",
		entityCols("name", "city", "address", "phone"))
}

func TestScopeInjectsVisibilityCondition(t *testing.T) {
	r := newTestRepo()

	scoped := r.scope(Where("city", "Lisbon"))

	require.Len(t, scoped, 2)
	assert.Equal(t, "deleted", scoped[1].Col)
	assert.Equal(t, opIsNull, scoped[1].op)
}

func TestScopeRespectsCallerIntentOnDeleted(t *testing.T) {
	r := newTestRepo()

	// A filter that already constrains deleted passes through untouched.
	trash := Filter{}.AndNotNull("deleted")
	assert.Equal(t, trash, r.scope(trash))

	stamped := Where("deleted", time.Now())
	assert.Equal(t, stamped, r.scope(stamped))
}

func TestScopeBypassedWhenUnscoped(t *testing.T) {
	r := newTestRepo().Unscoped()

	f := Where("city", "Lisbon")
	assert.Equal(t, f, r.scope(f))
}

func TestScopeDoesNotMutateCallerFilter(t *testing.T) {
	r := newTestRepo()

	f := make(Filter, 1, 4)
	f[0] = Cond{Col: "city", op: opEq, Val: "Lisbon"}

	scoped := r.scope(f)
	scoped[0].Val = "Porto"

	assert.Equal(t, "Lisbon", f[0].Val)
	assert.Len(t, f, 1)
}

func TestUnscopedReturnsIndependentClone(t *testing.T) {
	r := newTestRepo()
	u := r.Unscoped()

	assert.False(t, r.bypass)
	assert.True(t, u.bypass)
	assert.Equal(t, r.table, u.Table())
}

func TestBuildFindScopedSQL(t *testing.T) {
	r := newTestRepo()

	sql, args := r.buildFind(r.scope(Where("id", "abc")))

	assert.Equal(t,
		"SELECT id, created_at, updated_at, deleted, name, city, address, phone "+
			"FROM churches WHERE id = $1 AND deleted IS NULL LIMIT 1",
		sql)
	assert.Equal(t, []any{"abc"}, args)
}

func TestBuildFindManyClauses(t *testing.T) {
	r := newTestRepo()

	t.Run("all clauses", func(t *testing.T) {
		sql, args := r.buildFindMany(Where("city", "Lisbon"), "created_at DESC", 20, 40)
		assert.Equal(t,
			"SELECT id, created_at, updated_at, deleted, name, city, address, phone "+
				"FROM churches WHERE city = $1 ORDER BY created_at DESC LIMIT 20 OFFSET 40",
			sql)
		assert.Equal(t, []any{"Lisbon"}, args)
	})

	t.Run("zero values omit clauses", func(t *testing.T) {
		sql, args := r.buildFindMany(nil, "", 0, 0)
		assert.Equal(t,
			"SELECT id, created_at, updated_at, deleted, name, city, address, phone FROM churches",
			sql)
		assert.Empty(t, args)
	})
}

func TestBuildCountScopedSQL(t *testing.T) {
	r := newTestRepo()

	sql, args := r.buildCount(r.scope(nil))

	assert.Equal(t, "SELECT count(*) FROM churches WHERE deleted IS NULL", sql)
	assert.Empty(t, args)
}

func TestBuildCreateSQL(t *testing.T) {
	r := newTestRepo()

	sql, args := r.buildCreate(Cols{
		{Col: "name", Val: "St. Mary"},
		{Col: "city", Val: "Lisbon"},
	})

	assert.Equal(t,
		"INSERT INTO churches (name, city) VALUES ($1, $2) "+
			"RETURNING id, created_at, updated_at, deleted, name, city, address, phone",
		sql)
	assert.Equal(t, []any{"St. Mary", "Lisbon"}, args)
}

func TestBuildUpdateStampsUpdatedAt(t *testing.T) {
	r := newTestRepo()

	sql, args := r.buildUpdate(r.scope(Where("id", "abc")), Cols{
		{Col: "name", Val: "St. Mary"},
	})

	assert.Equal(t,
		"UPDATE churches SET name = $1, updated_at = now() "+
			"WHERE id = $2 AND deleted IS NULL "+
			"RETURNING id, created_at, updated_at, deleted, name, city, address, phone",
		sql)
	assert.Equal(t, []any{"St. Mary", "abc"}, args)
}

func TestBuildDeleteRewritesToSoftDelete(t *testing.T) {
	r := newTestRepo()

	sql, args := r.buildDelete(Where("id", "abc"))

	assert.Equal(t,
		"UPDATE churches SET deleted = now(), updated_at = now() WHERE id = $1 "+
			"RETURNING id, created_at, updated_at, deleted, name, city, address, phone",
		sql)
	assert.Equal(t, []any{"abc"}, args)
}

func TestBuildDeleteBypassIsPhysical(t *testing.T) {
	r := newTestRepo().Unscoped()

	sql, args := r.buildDelete(Where("id", "abc"))

	assert.Equal(t,
		"DELETE FROM churches WHERE id = $1 "+
			"RETURNING id, created_at, updated_at, deleted, name, city, address, phone",
		sql)
	assert.Equal(t, []any{"abc"}, args)
}

func TestBuildDeleteManyMergesExtraAssignments(t *testing.T) {
	r := newTestRepo()

	t.Run("deleted stamp is added alongside extras", func(t *testing.T) {
		sql, args := r.buildDeleteMany(Where("city", "Lisbon"), Cols{
			{Col: "phone", Val: nil},
		})
		assert.Equal(t,
			"UPDATE churches SET phone = $1, deleted = now(), updated_at = now() WHERE city = $2",
			sql)
		assert.Equal(t, []any{nil, "Lisbon"}, args)
	})

	t.Run("caller-supplied deleted is not overwritten", func(t *testing.T) {
		ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		sql, args := r.buildDeleteMany(Where("city", "Lisbon"), Cols{
			{Col: "deleted", Val: ts},
		})
		assert.Equal(t,
			"UPDATE churches SET deleted = $1, updated_at = now() WHERE city = $2",
			sql)
		assert.Equal(t, []any{ts, "Lisbon"}, args)
	})

	t.Run("bypass produces a physical bulk delete", func(t *testing.T) {
		sql, args := r.Unscoped().buildDeleteMany(Where("city", "Lisbon"), nil)
		assert.Equal(t, "DELETE FROM churches WHERE city = $1", sql)
		assert.Equal(t, []any{"Lisbon"}, args)
	})
}
