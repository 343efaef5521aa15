// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package oracle

import (
	"context"
	"errors"
	"testing"
)

type contract struct {
	Analysis struct {
		ReadingPace string `json:"readingPace"`
	} `json:"analysis"`
	Recommendations []struct {
		BookID     string  `json:"bookId"`
		MatchScore float64 `json:"matchScore"`
	} `json:"recommendations"`
}

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"prose around", "Sure! Here you go: {\"a\":1} Enjoy.", `{"a":1}`, true},
		{"markdown fence", "```json\n{\"a\":{\"b\":2}}\n```", "{\"a\":{\"b\":2}}", true},
		{"multiline", "{\n  \"a\": 1\n}", "{\n  \"a\": 1\n}", true},
		{"no braces", "I cannot help with that.", "", false},
		{"only opening brace", "{ unfinished", "", false},
		{"trailing prose with braces", "Here: {\"a\":1}\nScores use {genre,history} weights.", `{"a":1}`, true},
		{"two objects", `{"a":1} {"b":2}`, `{"a":1}`, true},
		{"braces inside strings", `Result {"reason":"a } in text","b":{"c":"{"}} done`, `{"reason":"a } in text","b":{"c":"{"}}`, true},
		{"escaped quote in string", `x {"q":"say \"}\" now"} y`, `{"q":"say \"}\" now"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractJSONObject(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractJSONObject() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr error
		wantIDs []string
	}{
		{
			name:    "strict json",
			raw:     `{"analysis":{"readingPace":"fast"},"recommendations":[{"bookId":"b1","matchScore":91}]}`,
			wantIDs: []string{"b1"},
		},
		{
			name:    "fenced json",
			raw:     "```json\n{\"recommendations\":[{\"bookId\":\"b2\",\"matchScore\":70},{\"bookId\":\"b3\",\"matchScore\":65}]}\n```",
			wantIDs: []string{"b2", "b3"},
		},
		{
			name:    "trailing prose with braces",
			raw:     "Here you go: {\"recommendations\":[{\"bookId\":\"b1\"}]}\nNote: scores use {genre,history} weights.",
			wantIDs: []string{"b1"},
		},
		{"empty", "   \n", ErrEmptyResponse, nil},
		{"no object", "no recommendations today", ErrNoJSONObject, nil},
		{"broken object", "result: {\"recommendations\": [ }", ErrMalformedResponse, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeJSON[contract](tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeJSON() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeJSON() error = %v", err)
			}
			if len(got.Recommendations) != len(tt.wantIDs) {
				t.Fatalf("got %d recommendations, want %d", len(got.Recommendations), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got.Recommendations[i].BookID != id {
					t.Errorf("recommendation %d = %q, want %q", i, got.Recommendations[i].BookID, id)
				}
			}
		})
	}
}

func TestGenerateJSON(t *testing.T) {
	t.Parallel()

	var gotPrompt string
	o := Func(func(_ context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return `{"analysis":{"readingPace":"slow"},"recommendations":[]}`, nil
	})

	got, err := GenerateJSON[contract](context.Background(), o, "recommend please")
	if err != nil {
		t.Fatalf("GenerateJSON() error = %v", err)
	}
	if gotPrompt != "recommend please" {
		t.Errorf("prompt = %q", gotPrompt)
	}
	if got.Analysis.ReadingPace != "slow" {
		t.Errorf("ReadingPace = %q", got.Analysis.ReadingPace)
	}
}

func TestGenerateJSON_OracleError(t *testing.T) {
	t.Parallel()

	netErr := errors.New("connection refused")
	o := Func(func(context.Context, string) (string, error) { return "", netErr })

	if _, err := GenerateJSON[contract](context.Background(), o, "p"); !errors.Is(err, netErr) {
		t.Errorf("GenerateJSON() error = %v, want wrapped %v", err, netErr)
	}
}
