// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/oracle"
)

// DefaultAIReason is used when the oracle omits a reason for a valid pick.
const DefaultAIReason = "recommended based on your reading history"

// AI strategy outcomes, used as the metric outcome label.
const (
	outcomeSuccess       = "success"
	outcomeSkipped       = "skipped"
	outcomeCanceled      = "canceled"
	outcomePromptError   = "prompt_error"
	outcomeTimeout       = "timeout"
	outcomeOracleError   = "oracle_error"
	outcomeEmptyResponse = "empty_response"
	outcomeParseError    = "parse_error"
	outcomeNoValidBooks  = "no_valid_books"
)

// errNoValidRecommendations marks an oracle answer with no usable book ids.
var errNoValidRecommendations = errors.New("oracle returned no valid recommendations")

// aiPayload is the strict JSON contract requested from the oracle.
type aiPayload struct {
	Analysis        aiAnalysis         `json:"analysis"`
	Recommendations []aiRecommendation `json:"recommendations"`
}

type aiAnalysis struct {
	FavoriteGenres  []string `json:"favoriteGenres"`
	ReadingPace     string   `json:"readingPace"`
	PreferredLength string   `json:"preferredLength"`
	Themes          []string `json:"themes"`
}

type aiRecommendation struct {
	BookID     bookID  `json:"bookId"`
	Title      string  `json:"title"`
	Reason     string  `json:"reason"`
	MatchScore float64 `json:"matchScore"`
}

// bookID accepts both JSON strings and numbers, since models sometimes echo
// numeric-looking ids unquoted.
type bookID string

// UnmarshalJSON implements json.Unmarshaler.
func (b *bookID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = bookID(strings.TrimSpace(s))
		return nil
	}

	num := strings.TrimSpace(string(data))
	if _, err := strconv.ParseFloat(num, 64); err != nil {
		return fmt.Errorf("bookId must be a string or number, got %s", num)
	}
	*b = bookID(num)
	return nil
}

// AIStrategy delegates analysis and ranking to a text oracle and degrades to
// the fallback strategy on any failure.
type AIStrategy struct {
	oracle        oracle.TextOracle
	fallback      *FallbackStrategy
	timeout       time.Duration
	maxCandidates int
	logger        zerolog.Logger
}

// NewAIStrategy creates an AI strategy that owns the given fallback.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAIStrategy(o oracle.TextOracle, fallback *FallbackStrategy, cfg *Config, logger zerolog.Logger) *AIStrategy {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &AIStrategy{
		oracle:        o,
		fallback:      fallback,
		timeout:       cfg.OracleTimeout,
		maxCandidates: cfg.MaxPromptCandidates,
		logger:        logger.With().Str("strategy", StrategyAI).Logger(),
	}
}

// Name implements Strategy.
func (s *AIStrategy) Name() string {
	return StrategyAI
}

// Generate implements Strategy.
//
// Oracle, prompt and parse failures never surface: the fallback result for the
// same inputs is returned instead. The only error returned is the caller's
// context error once ctx is done.
func (s *AIStrategy) Generate(ctx context.Context, userID string, profile *UserProfile, candidates []CandidateBook, limit int) (*RecommendationResponse, error) {
	if limit <= 0 || len(candidates) == 0 || s.oracle == nil {
		metrics.RecordStrategyOutcome(StrategyAI, outcomeSkipped)
		return s.fallback.Generate(ctx, userID, profile, candidates, limit)
	}
	if profile == nil {
		profile = &UserProfile{UserID: userID}
	}

	start := time.Now()
	resp, outcome, err := s.generate(ctx, profile, candidates, limit)
	if err == nil {
		metrics.RecordStrategyOutcome(StrategyAI, outcomeSuccess)
		s.logger.Debug().
			Str("user_id", userID).
			Int("returned", len(resp.Recommendations)).
			Dur("latency", time.Since(start)).
			Msg("ai recommendations generated")
		return resp, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.RecordStrategyOutcome(StrategyAI, outcomeCanceled)
		return nil, ctxErr
	}

	metrics.RecordStrategyOutcome(StrategyAI, outcome)
	s.logger.Warn().
		Err(err).
		Str("user_id", userID).
		Str("outcome", outcome).
		Dur("latency", time.Since(start)).
		Msg("ai recommendations failed, using fallback")

	return s.fallback.Generate(ctx, userID, profile, candidates, limit)
}

// generate runs the oracle path. On failure it returns the outcome label
// describing which stage failed.
func (s *AIStrategy) generate(ctx context.Context, profile *UserProfile, candidates []CandidateBook, limit int) (*RecommendationResponse, string, error) {
	pool := candidates
	if s.maxCandidates > 0 && len(pool) > s.maxCandidates {
		pool = pool[:s.maxCandidates]
	}

	prompt, err := BuildPrompt(profile, pool, limit)
	if err != nil {
		return nil, outcomePromptError, fmt.Errorf("build prompt: %w", err)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	payload, err := oracle.GenerateJSON[aiPayload](callCtx, s.oracle, prompt)
	if err != nil {
		return nil, classifyOracleError(err), err
	}

	results, dropped := validateRecommendations(payload.Recommendations, pool)
	if dropped > 0 {
		s.logger.Debug().
			Str("user_id", profile.UserID).
			Int("dropped", dropped).
			Msg("discarded oracle recommendations outside the candidate set")
	}
	if len(results) == 0 {
		return nil, outcomeNoValidBooks, errNoValidRecommendations
	}

	return &RecommendationResponse{
		Analysis:        normalizeAnalysis(payload.Analysis, profile),
		Recommendations: results,
	}, outcomeSuccess, nil
}

func classifyOracleError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	case errors.Is(err, oracle.ErrEmptyResponse):
		return outcomeEmptyResponse
	case errors.Is(err, oracle.ErrNoJSONObject), errors.Is(err, oracle.ErrMalformedResponse):
		return outcomeParseError
	default:
		return outcomeOracleError
	}
}

// validateRecommendations keeps oracle picks whose id is in pool, in oracle
// order, without duplicates. Title, slug and book come from the catalog entry.
func validateRecommendations(recs []aiRecommendation, pool []CandidateBook) ([]RecommendationResult, int) {
	byID := make(map[string]*CandidateBook, len(pool))
	for i := range pool {
		if _, ok := byID[pool[i].ID]; !ok {
			byID[pool[i].ID] = &pool[i]
		}
	}

	results := make([]RecommendationResult, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	dropped := 0

	for _, rec := range recs {
		id := string(rec.BookID)
		book, ok := byID[id]
		if !ok {
			dropped++
			continue
		}
		if _, dup := seen[id]; dup {
			dropped++
			continue
		}
		seen[id] = struct{}{}

		reason := strings.TrimSpace(rec.Reason)
		if reason == "" {
			reason = DefaultAIReason
		}
		results = append(results, newResult(book, reason, clampScore(rec.MatchScore)))
	}

	return results, dropped
}

// clampScore bounds an oracle-reported score to [0, 100].
func clampScore(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return 0
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

// normalizeAnalysis maps the oracle's analysis onto the allowed value sets.
// Missing favorite genres fall back to the profile's.
func normalizeAnalysis(a aiAnalysis, profile *UserProfile) RecommendationAnalysis {
	genres := nonEmptyStrings(a.FavoriteGenres)
	if len(genres) == 0 {
		genres = fallbackAnalysis(profile).FavoriteGenres
	}

	return RecommendationAnalysis{
		FavoriteGenres:  genres,
		ReadingPace:     oneOf(a.ReadingPace, PaceMedium, PaceFast, PaceMedium, PaceSlow),
		PreferredLength: oneOf(a.PreferredLength, LengthMedium, LengthShort, LengthMedium, LengthLong),
		Themes:          nonEmptyStrings(a.Themes),
	}
}

// oneOf returns the allowed value matching v case-insensitively, or def.
func oneOf(v, def string, allowed ...string) string {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return def
}

// nonEmptyStrings trims items and drops blanks and case-insensitive duplicates.
// The result is never nil.
func nonEmptyStrings(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
