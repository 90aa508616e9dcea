// Package service implements the business logic of the dashboard
// backend: authentication and the question-to-answer pipeline.
package service

import (
	"github.com/Paul4805/AI-Dashboard-Tool/config"
	"github.com/Paul4805/AI-Dashboard-Tool/llm"
	"github.com/Paul4805/AI-Dashboard-Tool/policy"
	"github.com/Paul4805/AI-Dashboard-Tool/store"
)

// Service coordinates the store, the LLM client and the SQL policy.
type Service struct {
	store  store.Store
	llm    llm.LLMClient
	policy *policy.Engine
	cfg    *config.Config
}

// New creates a new service.
func New(st store.Store, llmClient llm.LLMClient, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:  st,
		llm:    llmClient,
		policy: policyEngine,
		cfg:    cfg,
	}
}
