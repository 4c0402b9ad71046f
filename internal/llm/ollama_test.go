package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaProvider_Narrate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("Expected non-streaming request")
		}
		if !strings.Contains(req.Prompt, "high-rebound cushioning unit") {
			t.Errorf("Expected prompt to list allowed materials, got %s", req.Prompt)
		}

		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:           "llama3.1",
			Response:        "  The high-rebound cushioning unit softens each step.  ",
			Done:            true,
			PromptEvalCount: 10,
			EvalCount:       20,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL:         server.URL,
		Model:           "llama3.1",
		Timeout:         5,
		StrictMaterials: true,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Narrate(context.Background(), NarrateRequest{
		Profile:        testProfile(),
		Recommendation: testRecommendation(),
	})
	if err != nil {
		t.Fatalf("Narrate failed: %v", err)
	}

	if resp.Text != "The high-rebound cushioning unit softens each step." {
		t.Errorf("Unexpected text: %q", resp.Text)
	}
	if resp.TokensUsed != 30 {
		t.Errorf("Unexpected token usage: %d", resp.TokensUsed)
	}
}

func TestOllamaProvider_Narrate_EstimatesTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.1", Response: "Comfortable.", Done: true})
	}))
	defer server.Close()

	provider, _ := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1", Timeout: 5})

	resp, err := provider.Narrate(context.Background(), NarrateRequest{Prompt: "12345678", Recommendation: testRecommendation()})
	if err != nil {
		t.Fatalf("Narrate failed: %v", err)
	}
	if resp.TokensUsed != (8+len("Comfortable."))/4 {
		t.Errorf("Unexpected token estimate: %d", resp.TokensUsed)
	}
}

func TestOllamaProvider_Narrate_RequiresModel(t *testing.T) {
	provider, _ := NewOllamaProvider(Config{BaseURL: "http://127.0.0.1:1"})

	if _, err := provider.Narrate(context.Background(), NarrateRequest{}); err == nil {
		t.Fatal("Expected error without a model")
	}
}

func TestOllamaProvider_Narrate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "model not loaded"}`))
	}))
	defer server.Close()

	provider, _ := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1", Timeout: 5})

	_, err := provider.Narrate(context.Background(), NarrateRequest{Recommendation: testRecommendation()})
	if err == nil || !strings.Contains(err.Error(), "model not loaded") {
		t.Fatalf("Expected API error message, got %v", err)
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models": []}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider, _ := NewOllamaProvider(Config{BaseURL: server.URL + "/"})

	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected available to be true")
	}

	server.Close()
	if provider.IsAvailable(context.Background()) {
		t.Error("Expected available to be false once the server is gone")
	}
}
