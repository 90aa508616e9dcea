package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvDashMode is the environment variable name for mode selection.
	EnvDashMode = "DASH_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewLLMClient creates an LLM client based on the DASH_MODE environment
// variable. If DASH_MODE=MOCK, returns a MockClient; otherwise returns
// a real Client.
func NewLLMClient(baseURL, apiKey string, timeout time.Duration) LLMClient {
	mode := os.Getenv(EnvDashMode)

	if mode == ModeMock {
		log.Println("DASH_MODE=MOCK detected, using mock LLM client")
		return NewMockClient()
	}

	return NewClient(baseURL, apiKey, timeout)
}
