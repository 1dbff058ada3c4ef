// Package query builds parameterized PostgreSQL statements from projection
// maps that translate Go field names to qualified columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to aliased table columns.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project registers column under the view name field. Columns are selected in
// registration order.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns = append(p.columns, qualified)
	p.fields[field] = qualified
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Name returns the schema-qualified table name without alias.
func (p *ProjectionMap) Name() string {
	return fmt.Sprintf("%s.%s", p.schema, p.table)
}

// Table returns the schema-qualified table with its alias, for FROM clauses.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the qualified column for field, or field itself when unknown.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[field]; ok {
		return col
	}
	return field
}

// Bare returns the unqualified column for field, for SET and RETURNING lists.
func (p *ProjectionMap) Bare(field string) string {
	return strings.TrimPrefix(p.Column(field), p.alias+".")
}

// Columns returns the comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns the qualified columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	return append([]string(nil), p.columns...)
}

// Returning returns the unqualified select list for RETURNING clauses.
func (p *ProjectionMap) Returning() string {
	bare := make([]string, len(p.columns))
	for i, col := range p.columns {
		bare[i] = strings.TrimPrefix(col, p.alias+".")
	}
	return strings.Join(bare, ", ")
}
