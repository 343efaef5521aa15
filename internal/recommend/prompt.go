// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Prompt section bounds.
const (
	promptMaxCompleted    = 10
	promptMaxHighRated    = 5
	promptReviewExcerpt   = 200
	promptDescriptionSize = 200
)

// promptCandidate is the serialized form of a candidate inside the prompt.
type promptCandidate struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	Description string   `json:"description"`
	Views       int64    `json:"views"`
	Likes       int64    `json:"likes"`
}

// BuildPrompt renders the recommendation prompt for the text oracle.
//
// The candidate list is the only valid recommendation universe; the prompt
// tells the oracle to pick exclusively from it and to answer with the strict
// {analysis, recommendations} JSON object.
func BuildPrompt(profile *UserProfile, candidates []CandidateBook, limit int) (string, error) {
	if profile == nil {
		profile = &UserProfile{}
	}

	var b strings.Builder

	b.WriteString("You are a book recommendation assistant for an online reading platform.\n")
	b.WriteString("Analyze the reader below and recommend books from the candidate list.\n\n")

	b.WriteString("## Reader profile\n\n")
	writeCompleted(&b, profile.CompletedBooks)
	writeReading(&b, profile.CurrentlyReading)
	writeHighRated(&b, profile.HighRatedBooks)

	b.WriteString("Favorite genres: ")
	if len(profile.FavoriteGenres) == 0 {
		b.WriteString("none yet")
	} else {
		b.WriteString(strings.Join(profile.FavoriteGenres, ", "))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total reading time: %.1f hours\n\n", float64(profile.TotalReadingTimeSeconds)/3600)

	b.WriteString("## Candidate books\n\n")
	b.WriteString("Each line is one candidate as JSON. These are the ONLY books you may recommend.\n")
	for i := range candidates {
		line, err := json.Marshal(toPromptCandidate(&candidates[i]))
		if err != nil {
			return "", fmt.Errorf("encode candidate %s: %w", candidates[i].ID, err)
		}
		b.Write(line)
		b.WriteString("\n")
	}

	b.WriteString("\n## Instructions\n\n")
	fmt.Fprintf(&b, "1. Recommend exactly %d books, choosing only ids from the candidate list.\n", limit)
	b.WriteString("2. Never invent books or ids that are not listed above.\n")
	b.WriteString("3. Compute matchScore from 0 to 100 using these weights:\n")
	b.WriteString("   - genre match with the reader's favorites: 40%\n")
	b.WriteString("   - similarity to the reader's history pattern: 30%\n")
	b.WriteString("   - popularity (views and likes): 20%\n")
	b.WriteString("   - diversity bonus for broadening the reader's taste: 10%\n")
	b.WriteString("4. Give a short, specific reason for every recommendation.\n")
	b.WriteString("5. readingPace must be one of fast, medium, slow.\n")
	b.WriteString("6. preferredLength must be one of short, medium, long.\n\n")

	b.WriteString("Respond with a single JSON object and nothing else, in exactly this shape:\n")
	b.WriteString(`{"analysis":{"favoriteGenres":["string"],"readingPace":"fast|medium|slow","preferredLength":"short|medium|long","themes":["string"]},`)
	b.WriteString(`"recommendations":[{"bookId":"string","title":"string","reason":"string","matchScore":0}]}`)
	b.WriteString("\n")

	return b.String(), nil
}

func writeCompleted(b *strings.Builder, completed []CompletedBook) {
	b.WriteString("Completed books:\n")
	if len(completed) == 0 {
		b.WriteString("- none\n")
	}
	for i, c := range completed {
		if i >= promptMaxCompleted {
			break
		}
		fmt.Fprintf(b, "- %s (genres: %s)\n", c.Book.Title, joinOrNone(c.Book.GenreNames()))
	}
	b.WriteString("\n")
}

func writeReading(b *strings.Builder, reading []ReadingBook) {
	b.WriteString("Currently reading:\n")
	if len(reading) == 0 {
		b.WriteString("- none\n")
	}
	for _, r := range reading {
		if r.Progress.TotalChapters > 0 {
			fmt.Fprintf(b, "- %s (chapter %d of %d)\n", r.Book.Title, r.Progress.CurrentChapter, r.Progress.TotalChapters)
		} else {
			fmt.Fprintf(b, "- %s (chapter %d)\n", r.Book.Title, r.Progress.CurrentChapter)
		}
	}
	b.WriteString("\n")
}

func writeHighRated(b *strings.Builder, rated []RatedBook) {
	b.WriteString("Highly rated books:\n")
	if len(rated) == 0 {
		b.WriteString("- none\n")
	}
	for i, r := range rated {
		if i >= promptMaxHighRated {
			break
		}
		fmt.Fprintf(b, "- %s (rating %d/5)", r.Book.Title, r.Rating)
		if review := excerpt(r.Review, promptReviewExcerpt); review != "" {
			fmt.Fprintf(b, ": %q", review)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func toPromptCandidate(book *CandidateBook) promptCandidate {
	return promptCandidate{
		ID:          book.ID,
		Title:       book.Title,
		Genres:      book.GenreNames(),
		Description: excerpt(book.Description, promptDescriptionSize),
		Views:       book.Views,
		Likes:       book.Likes,
	}
}

// excerpt returns at most n runes of s with surrounding whitespace removed.
func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
