package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockClient is a mock implementation of LLMClient for testing and
// offline development. It recognizes the three prompt kinds the
// service sends and returns a plausible canned answer for each.
type MockClient struct{}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// CreateChatCompletion returns a mock response.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	content := m.generateMockResponse(req)

	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{
			PromptTokens:     m.estimateTokens(req),
			CompletionTokens: len(content) / 4,
			TotalTokens:      m.estimateTokens(req) + len(content)/4,
		},
	}, nil
}

func (m *MockClient) generateMockResponse(req *ChatCompletionRequest) string {
	var prompt string
	if len(req.Messages) > 0 {
		prompt = req.Messages[len(req.Messages)-1].Content
	}

	switch {
	case strings.Contains(prompt, "SQL"):
		return "```sql\nSELECT 1;\n```"
	case strings.Contains(prompt, `"chart_type": "pie"`):
		return `{"chart_type": "pie", "title": "mock", "labels": ["a", "b"], "values": [1, 2]}`
	case strings.Contains(prompt, `"chart_type": "bar"`):
		return `{"chart_type": "bar", "title": "mock", "x_axis": {"label": "x", "values": ["a"]}, "y_axis": {"label": "y", "values": [1]}}`
	default:
		return "[MOCK] This is a mock analysis of the extracted results."
	}
}

// estimateTokens provides a rough token count estimate.
func (m *MockClient) estimateTokens(req *ChatCompletionRequest) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content) / 4
	}
	return total
}
