// Package ai relays prompts to the Gemini generateContent API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const geminiAPIBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// LLMClient abstracts LLM API calls for testability.
type LLMClient interface {
	Complete(ctx context.Context, req CompleteRequest) (string, error)
}

// CompleteRequest holds parameters for an LLM completion call.
type CompleteRequest struct {
	Prompt      string
	Model       string  // overrides config default if non-empty
	MaxTokens   int     // overrides config default if > 0
	Temperature float64 // -1 means use config default
}

// geminiClient implements LLMClient using the Gemini REST API.
type geminiClient struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	http        *http.Client
	logger      zerolog.Logger
}

// NewGeminiClient creates an LLM client for the Gemini generateContent API.
func NewGeminiClient(cfg Config, logger zerolog.Logger) *geminiClient {
	return &geminiClient{
		apiKey:      cfg.APIKey,
		baseURL:     geminiAPIBaseURL,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		http:        &http.Client{Timeout: 60 * time.Second},
		logger:      logger.With().Str("component", "ai").Logger(),
	}
}

// generateRequest is the Gemini generateContent request body.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature"`
}

// generateResponse is the Gemini generateContent response body.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *geminiClient) Complete(ctx context.Context, req CompleteRequest) (string, error) {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	maxTokens := c.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	temperature := c.temperature
	if req.Temperature >= 0 {
		temperature = req.Temperature
	}

	body := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: req.Prompt}}},
		},
		GenerationConfig: &generationConfig{
			MaxOutputTokens: maxTokens,
			Temperature:     temperature,
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	c.logger.Debug().
		Str("model", model).
		Int("max_tokens", maxTokens).
		Msg("calling Gemini API")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini API request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini API returned empty content")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
