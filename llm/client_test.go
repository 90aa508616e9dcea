package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization header: %q", got)
		}

		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 1 {
			t.Fatalf("unexpected request: %+v", req)
		}

		resp := ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: req.Model,
			Choices: []Choice{
				{Message: &ChatMessage{Role: "assistant", Content: "SELECT 1"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	resp, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "test-model",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}
	if resp.Content() != "SELECT 1" {
		t.Fatalf("unexpected content: %q", resp.Content())
	}
}

func TestCreateChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Error: &APIError{Message: "bad key", Type: "auth_error"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong", 5*time.Second)
	_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{Model: "m"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestContentEmptyChoices(t *testing.T) {
	resp := &ChatCompletionResponse{}
	if got := resp.Content(); got != "" {
		t.Fatalf("expected empty content, got %q", got)
	}
}

func TestMockClientShapes(t *testing.T) {
	m := NewMockClient()
	ctx := context.Background()

	cases := []struct {
		prompt string
		want   string
	}{
		{"ترجمه به کوئری SQL", "SELECT"},
		{`قالب: { "chart_type": "pie", "labels": [] }`, `"chart_type": "pie"`},
		{`قالب: { "chart_type": "bar", "x_axis": {} }`, `"chart_type": "bar"`},
		{"تحلیل داده", "[MOCK]"},
	}
	for _, tc := range cases {
		resp, err := m.CreateChatCompletion(ctx, &ChatCompletionRequest{
			Model:    "m",
			Messages: []ChatMessage{{Role: "user", Content: tc.prompt}},
		})
		if err != nil {
			t.Fatalf("mock failed: %v", err)
		}
		content := resp.Content()
		if !strings.Contains(content, tc.want) {
			t.Fatalf("prompt %q: expected response containing %q, got %q", tc.prompt, tc.want, content)
		}
	}
}
