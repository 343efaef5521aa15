// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/tomtom215/folio/internal/metrics"
)

// GeminiConfig configures the Gemini text oracle.
type GeminiConfig struct {
	// APIKey is the Gemini API key. Required.
	APIKey string

	// Model is the generation model name.
	// Default: gemini-2.0-flash
	Model string

	// Temperature controls sampling randomness.
	// Default: 0.7
	Temperature float32

	// MaxOutputTokens bounds the response size.
	// Default: 4096
	MaxOutputTokens int32

	// SystemInstruction is sent with every request when non-empty.
	SystemInstruction string

	// BaseURL overrides the API endpoint (used by tests and proxies).
	BaseURL string
}

// Gemini generates text using Google's Gemini API. Responses are requested as
// application/json.
type Gemini struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGemini creates a Gemini oracle.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = 4096
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(cfg.Temperature),
		MaxOutputTokens:  cfg.MaxOutputTokens,
	}
	if cfg.SystemInstruction != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}

	return &Gemini{
		client: client,
		model:  cfg.Model,
		config: genCfg,
	}, nil
}

// Generate implements TextOracle.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	metrics.OracleCallDuration.WithLabelValues(g.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OracleCalls.WithLabelValues(g.Name(), "error").Inc()
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		metrics.OracleCalls.WithLabelValues(g.Name(), "empty").Inc()
		return "", ErrEmptyResponse
	}

	metrics.OracleCalls.WithLabelValues(g.Name(), "success").Inc()
	return text, nil
}

// Name returns the oracle name.
func (g *Gemini) Name() string {
	return "gemini:" + g.model
}
