// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildPrompt_Contents(t *testing.T) {
	t.Parallel()

	profile := &UserProfile{
		UserID:                  "u1",
		FavoriteGenres:          []string{"Fantasy", "Mystery"},
		TotalReadingTimeSeconds: 9000,
	}
	for i := 0; i < 12; i++ {
		b := testBook(fmt.Sprintf("c%02d", i), 0, 0, "Fantasy")
		profile.CompletedBooks = append(profile.CompletedBooks, CompletedBook{Book: &b})
	}
	reading := testBook("r1", 0, 0)
	profile.CurrentlyReading = []ReadingBook{{Book: &reading, Progress: ReadingProgress{CurrentChapter: 3, TotalChapters: 12}}}
	for i := 0; i < 7; i++ {
		b := testBook(fmt.Sprintf("h%d", i), 0, 0)
		profile.HighRatedBooks = append(profile.HighRatedBooks, RatedBook{Book: &b, Rating: 5, Review: "loved it"})
	}

	candidates := []CandidateBook{testBook("cand-1", 120, 7, "Fantasy", "Adventure")}

	prompt, err := BuildPrompt(profile, candidates, 4)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	mustContain := []string{
		"Title c00 (genres: Fantasy)",
		"Title c09 (genres: Fantasy)",
		"Title r1 (chapter 3 of 12)",
		"Title h4 (rating 5/5): \"loved it\"",
		"Favorite genres: Fantasy, Mystery",
		"Total reading time: 2.5 hours",
		`{"id":"cand-1","title":"Title cand-1","genres":["Fantasy","Adventure"],"description":"Description of cand-1","views":120,"likes":7}`,
		"Recommend exactly 4 books",
		"Never invent books or ids",
		"genre match with the reader's favorites: 40%",
		"similarity to the reader's history pattern: 30%",
		"popularity (views and likes): 20%",
		"diversity bonus for broadening the reader's taste: 10%",
		`"recommendations":[{"bookId":"string"`,
	}
	for _, want := range mustContain {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	for _, unwanted := range []string{"Title c10", "Title c11", "Title h5", "Title h6"} {
		if strings.Contains(prompt, unwanted) {
			t.Errorf("prompt should not contain %q", unwanted)
		}
	}
}

func TestBuildPrompt_EmptyProfile(t *testing.T) {
	t.Parallel()

	prompt, err := BuildPrompt(nil, nil, 10)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	for _, want := range []string{"Completed books:\n- none", "Favorite genres: none yet", "Total reading time: 0.0 hours"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 250)
	got := excerpt(long, 200)
	if utf8.RuneCountInString(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("excerpt rune count = %d", utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Error("excerpt split a multi-byte rune")
	}
	if got := excerpt("  short  ", 200); got != "short" {
		t.Errorf("excerpt(short) = %q", got)
	}
}
