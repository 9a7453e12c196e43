package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterRender(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		startArg int
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "empty filter",
			filter:   nil,
			startArg: 1,
			wantSQL:  "",
			wantArgs: nil,
		},
		{
			name:     "single equality",
			filter:   Where("city", "Lisbon"),
			startArg: 1,
			wantSQL:  "city = $1",
			wantArgs: []any{"Lisbon"},
		},
		{
			name:     "conditions join with AND in order",
			filter:   Where("city", "Lisbon").AndEq("name", "St. Mary"),
			startArg: 1,
			wantSQL:  "city = $1 AND name = $2",
			wantArgs: []any{"Lisbon", "St. Mary"},
		},
		{
			name:     "membership binds one array argument",
			filter:   Where("kind", "tithe").AndIn("currency", []string{"EUR", "USD"}),
			startArg: 1,
			wantSQL:  "kind = $1 AND currency = ANY($2)",
			wantArgs: []any{"tithe", []string{"EUR", "USD"}},
		},
		{
			name:     "null conditions consume no placeholder",
			filter:   Filter{}.AndNull("deleted").AndEq("city", "Porto"),
			startArg: 1,
			wantSQL:  "deleted IS NULL AND city = $1",
			wantArgs: []any{"Porto"},
		},
		{
			name:     "not null",
			filter:   Filter{}.AndNotNull("deleted"),
			startArg: 1,
			wantSQL:  "deleted IS NOT NULL",
			wantArgs: []any{},
		},
		{
			name:     "placeholder numbering honors startArg",
			filter:   Where("church_id", "x").AndEq("kind", "offering"),
			startArg: 4,
			wantSQL:  "church_id = $4 AND kind = $5",
			wantArgs: []any{"x", "offering"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.render(tt.startArg)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterHas(t *testing.T) {
	f := Where("city", "Lisbon").AndNull("deleted")

	assert.True(t, f.Has("city"))
	assert.True(t, f.Has("deleted"))
	assert.False(t, f.Has("name"))
	assert.False(t, Filter(nil).Has("deleted"))
}
