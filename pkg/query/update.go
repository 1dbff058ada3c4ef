package query

import (
	"fmt"
	"strings"
)

type assignment struct {
	column string
	expr   string
	value  any
}

// Update builds an UPDATE ... SET ... WHERE id = $n RETURNING statement from
// the assignments added to it.
type Update struct {
	projection  *ProjectionMap
	assignments []assignment
}

// NewUpdate creates an UPDATE builder for the projection's table.
func NewUpdate(projection *ProjectionMap) *Update {
	return &Update{projection: projection}
}

// Set assigns value to field.
func (u *Update) Set(field string, value any) *Update {
	return u.SetExpr(field, "$%d", value)
}

// SetIf assigns the pointed-to value when ptr is non-nil.
func SetIf[T any](u *Update, field string, ptr *T) *Update {
	if ptr == nil {
		return u
	}
	return u.Set(field, *ptr)
}

// SetExpr assigns a SQL expression to field. The expression references the
// bound value with a single "$%d" placeholder, e.g. "GREATEST(updated_at, $%d)".
func (u *Update) SetExpr(field, expr string, value any) *Update {
	u.assignments = append(u.assignments, assignment{
		column: u.projection.Bare(field),
		expr:   expr,
		value:  value,
	})
	return u
}

// Len reports the number of assignments.
func (u *Update) Len() int {
	return len(u.assignments)
}

// Build returns the statement and arguments. The id is bound last.
func (u *Update) Build(idField string, id any) (string, []any) {
	sets := make([]string, len(u.assignments))
	args := make([]any, 0, len(u.assignments)+1)

	for i, a := range u.assignments {
		args = append(args, a.value)
		sets[i] = fmt.Sprintf("%s = %s", a.column, strings.Replace(a.expr, "$%d", fmt.Sprintf("$%d", len(args)), 1))
	}
	args = append(args, id)

	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		u.projection.Name(),
		strings.Join(sets, ", "),
		u.projection.Bare(idField),
		len(args),
		u.projection.Returning(),
	)
	return sql, args
}
