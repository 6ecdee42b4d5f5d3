package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestGeminiClient_Complete(t *testing.T) {
	var capturedReq generateRequest
	var capturedPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("x-goog-api-key = %q, want %q", got, "test-key")
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want %q", got, "application/json")
		}
		capturedPath = r.URL.Path

		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &capturedReq)

		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []candidate{
				{Content: content{Role: "model", Parts: []part{{Text: "enjoy your lunch"}}}},
			},
		})
	}))
	defer srv.Close()

	c := &geminiClient{
		apiKey:      "test-key",
		baseURL:     srv.URL,
		model:       "gemini-1.5-flash-latest",
		maxTokens:   1024,
		temperature: 0.0,
		http:        http.DefaultClient,
		logger:      testLogger(),
	}

	result, err := c.Complete(context.Background(), CompleteRequest{
		Prompt:      "what's for lunch",
		Temperature: -1,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if result != "enjoy your lunch" {
		t.Errorf("result = %q, want %q", result, "enjoy your lunch")
	}

	if !strings.Contains(capturedPath, "gemini-1.5-flash-latest:generateContent") {
		t.Errorf("path = %q, want model generateContent call", capturedPath)
	}
	if len(capturedReq.Contents) != 1 || len(capturedReq.Contents[0].Parts) != 1 ||
		capturedReq.Contents[0].Parts[0].Text != "what's for lunch" {
		t.Errorf("contents = %+v, want single user part", capturedReq.Contents)
	}
	if capturedReq.GenerationConfig == nil || capturedReq.GenerationConfig.MaxOutputTokens != 1024 {
		t.Errorf("generationConfig = %+v, want maxOutputTokens 1024", capturedReq.GenerationConfig)
	}
}

func TestGeminiClient_Overrides(t *testing.T) {
	var capturedReq generateRequest
	var capturedPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &capturedReq)
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []candidate{
				{Content: content{Parts: []part{{Text: "ok"}}}},
			},
		})
	}))
	defer srv.Close()

	c := &geminiClient{
		apiKey:      "k",
		baseURL:     srv.URL,
		model:       "gemini-1.5-flash-latest",
		maxTokens:   1024,
		temperature: 0.0,
		http:        http.DefaultClient,
		logger:      testLogger(),
	}

	_, err := c.Complete(context.Background(), CompleteRequest{
		Prompt:      "hi",
		Model:       "gemini-1.5-pro",
		MaxTokens:   64,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	if !strings.Contains(capturedPath, "gemini-1.5-pro:generateContent") {
		t.Errorf("path = %q, want overridden model", capturedPath)
	}
	if capturedReq.GenerationConfig.MaxOutputTokens != 64 {
		t.Errorf("maxOutputTokens = %d, want 64", capturedReq.GenerationConfig.MaxOutputTokens)
	}
	if capturedReq.GenerationConfig.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", capturedReq.GenerationConfig.Temperature)
	}
}

func TestGeminiClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(generateResponse{
			Error: &apiError{Code: 429, Message: "quota exceeded"},
		})
	}))
	defer srv.Close()

	c := &geminiClient{
		apiKey:  "k",
		baseURL: srv.URL,
		model:   "gemini-1.5-flash-latest",
		http:    http.DefaultClient,
		logger:  testLogger(),
	}

	if _, err := c.Complete(context.Background(), CompleteRequest{Prompt: "hi", Temperature: -1}); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestGeminiClient_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer srv.Close()

	c := &geminiClient{
		apiKey:  "k",
		baseURL: srv.URL,
		model:   "gemini-1.5-flash-latest",
		http:    http.DefaultClient,
		logger:  testLogger(),
	}

	if _, err := c.Complete(context.Background(), CompleteRequest{Prompt: "hi", Temperature: -1}); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
