// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"testing"
)

func TestSampleEligible(t *testing.T) {
	db := setupTestDB(t)
	insertGenre(t, db, "g-horror", "Horror", "horror")
	insertBook(t, db, "pub-1", BookStatusPublished, false, 1, 1, "g-horror")
	insertBook(t, db, "pub-2", BookStatusPublished, false, 2, 2)
	insertBook(t, db, "draft", BookStatusDraft, false, 3, 3)
	insertBook(t, db, "deleted", BookStatusPublished, true, 4, 4)
	ctx := context.Background()

	got, err := db.SampleEligible(ctx, 10)
	if err != nil {
		t.Fatalf("SampleEligible() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("SampleEligible() returned %d books, want 2", len(got))
	}

	byID := map[string]int{}
	for i, b := range got {
		byID[b.ID] = i
	}
	for _, id := range []string{"pub-1", "pub-2"} {
		if _, ok := byID[id]; !ok {
			t.Errorf("SampleEligible() missing %s", id)
		}
	}

	horror := got[byID["pub-1"]]
	if len(horror.Genres) != 1 || horror.Genres[0].Name != "Horror" {
		t.Errorf("pub-1 genres = %+v", horror.Genres)
	}

	n, err := db.CountEligibleBooks(ctx)
	if err != nil {
		t.Fatalf("CountEligibleBooks() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountEligibleBooks() = %d, want 2", n)
	}
}

func TestSampleEligible_RespectsMaxCount(t *testing.T) {
	db := setupTestDB(t)
	for i := range 8 {
		insertBook(t, db, fmt.Sprintf("book-%d", i), BookStatusPublished, false, int64(i), 0)
	}
	ctx := context.Background()

	got, err := db.SampleEligible(ctx, 3)
	if err != nil {
		t.Fatalf("SampleEligible() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("SampleEligible(3) returned %d books", len(got))
	}

	seen := map[string]bool{}
	for _, b := range got {
		if seen[b.ID] {
			t.Errorf("duplicate book %s in sample", b.ID)
		}
		seen[b.ID] = true
	}

	none, err := db.SampleEligible(ctx, 0)
	if err != nil {
		t.Fatalf("SampleEligible(0) error = %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("SampleEligible(0) = %v, want empty non-nil slice", none)
	}
}
