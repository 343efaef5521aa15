// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package query

import (
	"strings"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddClause("NOT b.is_deleted")
//	wb.AddIn("b.id", bookIDs)
//	whereClause, args := wb.Build()
//	// NOT b.is_deleted AND b.id IN (?, ?)
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []any{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddIn adds "column IN (?, ...)". An empty values slice adds "1=0" so the
// query matches nothing instead of everything.
func (wb *WhereBuilder) AddIn(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		wb.clauses = append(wb.clauses, "1=0")
		return wb
	}
	wb.clauses = append(wb.clauses, column+" IN ("+Placeholders(len(values))+")")
	for _, v := range values {
		wb.args = append(wb.args, v)
	}
	return wb
}

// AddAnyIn adds "(col1 IN (...) OR col2 IN (...))" binding values once per
// column. An empty values slice adds "1=0".
func (wb *WhereBuilder) AddAnyIn(columns []string, values []string) *WhereBuilder {
	if len(values) == 0 || len(columns) == 0 {
		wb.clauses = append(wb.clauses, "1=0")
		return wb
	}
	placeholders := Placeholders(len(values))
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + " IN (" + placeholders + ")"
		for _, v := range values {
			wb.args = append(wb.args, v)
		}
	}
	wb.clauses = append(wb.clauses, "("+strings.Join(parts, " OR ")+")")
	return wb
}

// Build returns the WHERE clause (without the "WHERE" keyword) and arguments.
// Returns "1=1" if no clauses were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", []any{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE" prefix and arguments.
func (wb *WhereBuilder) BuildWithPrefix() (string, []any) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

// Placeholders returns n comma-separated "?" placeholders.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
