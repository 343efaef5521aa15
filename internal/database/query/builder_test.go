// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package query

import (
	"testing"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}

	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddIn(t *testing.T) {
	wb := NewWhereBuilder()
	ids := []string{"b1", "b2", "b3"}

	wb.AddIn("book_id", ids)

	whereClause, args := wb.Build()
	expected := "book_id IN (?, ?, ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 3 {
		t.Fatalf("Expected 3 args, got %d", len(args))
	}
	for i, id := range ids {
		if args[i] != id {
			t.Errorf("Expected arg[%d] = %q, got %q", i, id, args[i])
		}
	}
}

func TestWhereBuilder_AddInEmptyMatchesNothing(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddIn("book_id", nil)

	whereClause, args := wb.Build()
	if whereClause != "1=0" {
		t.Errorf("Expected '1=0', got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddAnyIn(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddAnyIn([]string{"lower(name)", "lower(slug)"}, []string{"fantasy", "horror"})

	whereClause, args := wb.Build()
	expected := "(lower(name) IN (?, ?) OR lower(slug) IN (?, ?))"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	want := []any{"fantasy", "horror", "fantasy", "horror"}
	if len(args) != len(want) {
		t.Fatalf("Expected %d args, got %d", len(want), len(args))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestWhereBuilder_Combined(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddClause("status = ?", "published")
	wb.AddClause("NOT is_deleted")
	wb.AddIn("id", []string{"a", "b"})

	whereClause, args := wb.BuildWithPrefix()
	expected := "WHERE status = ? AND NOT is_deleted AND id IN (?, ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
	if wb.Count() != 3 {
		t.Errorf("Expected count 3, got %d", wb.Count())
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-1, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := Placeholders(tt.n); got != tt.want {
			t.Errorf("Placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
