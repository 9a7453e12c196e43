package repository

import (
	"fmt"
	"strings"
)

type op int

const (
	opEq op = iota
	opIn
	opIsNull
	opNotNull
)

// Cond is a single column condition. Conditions are always combined with AND.
type Cond struct {
	Col string
	op  op
	Val any
}

// Filter is an ordered list of column conditions rendered into a
// parameterized WHERE clause. Column names come from code, never from
// request input; user-controlled values only ever appear as bind arguments.
type Filter []Cond

// Where starts a filter with an equality condition.
func Where(col string, val any) Filter {
	return Filter{{Col: col, op: opEq, Val: val}}
}

// AndEq appends an equality condition.
func (f Filter) AndEq(col string, val any) Filter {
	return append(f, Cond{Col: col, op: opEq, Val: val})
}

// AndIn appends a membership condition. val must be a slice; it is bound as
// a single array argument and rendered as col = ANY($n).
func (f Filter) AndIn(col string, val any) Filter {
	return append(f, Cond{Col: col, op: opIn, Val: val})
}

// AndNull appends an IS NULL condition.
func (f Filter) AndNull(col string) Filter {
	return append(f, Cond{Col: col, op: opIsNull})
}

// AndNotNull appends an IS NOT NULL condition.
func (f Filter) AndNotNull(col string) Filter {
	return append(f, Cond{Col: col, op: opNotNull})
}

// Has reports whether the filter already constrains the given column.
// The soft-delete rewriter uses this to respect explicit caller intent.
func (f Filter) Has(col string) bool {
	for _, c := range f {
		if c.Col == col {
			return true
		}
	}
	return false
}

// render produces the WHERE clause body and the bind arguments, numbering
// placeholders from startArg. An empty filter renders to an empty string.
func (f Filter) render(startArg int) (string, []any) {
	if len(f) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(f))
	args := make([]any, 0, len(f))
	n := startArg

	for _, c := range f {
		switch c.op {
		case opEq:
			parts = append(parts, fmt.Sprintf("%s = $%d", c.Col, n))
			args = append(args, c.Val)
			n++
		case opIn:
			parts = append(parts, fmt.Sprintf("%s = ANY($%d)", c.Col, n))
			args = append(args, c.Val)
			n++
		case opIsNull:
			parts = append(parts, c.Col+" IS NULL")
		case opNotNull:
			parts = append(parts, c.Col+" IS NOT NULL")
		}
	}

	return strings.Join(parts, " AND "), args
}
