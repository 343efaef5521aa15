// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ExtractJSONObject returns the first top-level {...} block embedded in text,
// for responses wrapped in prose or markdown fences. Braces inside JSON
// strings are ignored; text after the block's closing brace is not inspected.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// DecodeJSON parses raw as JSON into T. If raw is not valid JSON, the first
// top-level object block is extracted and parsed instead.
func DecodeJSON[T any](raw string) (T, error) {
	var out T

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return out, ErrEmptyResponse
	}

	directErr := json.Unmarshal([]byte(trimmed), &out)
	if directErr == nil {
		return out, nil
	}

	block, ok := ExtractJSONObject(trimmed)
	if !ok {
		return out, fmt.Errorf("%w: %v", ErrNoJSONObject, directErr)
	}

	out = *new(T)
	if err := json.Unmarshal([]byte(block), &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out, nil
}

// GenerateJSON calls the oracle once and decodes its answer into T.
func GenerateJSON[T any](ctx context.Context, o TextOracle, prompt string) (T, error) {
	raw, err := o.Generate(ctx, prompt)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("generate: %w", err)
	}
	return DecodeJSON[T](raw)
}
