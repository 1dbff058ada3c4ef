package query

import (
	"fmt"
	"strings"
)

type equality struct {
	column string
	value  any
}

// Builder assembles a SELECT over a projection. Conditions are ANDed
// equalities numbered $1..$n in the order they were added.
type Builder struct {
	projection  *ProjectionMap
	where       []equality
	sortColumn  string
	descending  bool
	defaultSort string
}

// NewBuilder starts a SELECT over projection, ordered by defaultSort unless
// OrderBy names another field. An empty defaultSort leaves rows unordered.
func NewBuilder(projection *ProjectionMap, defaultSort string) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// WhereEquals requires field to equal value. A nil value adds nothing, so
// optional filters can be passed straight through.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if value != nil {
		b.where = append(b.where, equality{column: b.projection.Column(field), value: value})
	}
	return b
}

// OrderBy sets the sort direction, and the sort field when field is not empty.
func (b *Builder) OrderBy(field string, descending bool) *Builder {
	if field != "" {
		b.sortColumn = b.projection.Column(field)
	}
	b.descending = descending
	return b
}

// Build renders the statement and its arguments.
func (b *Builder) Build() (string, []any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", b.projection.Columns(), b.projection.Table())

	args := make([]any, 0, len(b.where))
	for i, eq := range b.where {
		keyword := " AND "
		if i == 0 {
			keyword = " WHERE "
		}
		args = append(args, eq.value)
		fmt.Fprintf(&sb, "%s%s = $%d", keyword, eq.column, len(args))
	}

	if column := b.orderColumn(); column != "" {
		dir := "ASC"
		if b.descending {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", column, dir)
	}

	return sb.String(), args
}

// BuildSingle renders a lookup of one row by idField. Conditions and ordering
// are ignored.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	q := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.Table(),
		b.projection.Column(idField),
	)
	return q, []any{id}
}

func (b *Builder) orderColumn() string {
	if b.sortColumn != "" {
		return b.sortColumn
	}
	if b.defaultSort == "" {
		return ""
	}
	return b.projection.Column(b.defaultSort)
}
