package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Paul4805/AI-Dashboard-Tool/domain"
	"github.com/Paul4805/AI-Dashboard-Tool/llm"
	"github.com/Paul4805/AI-Dashboard-Tool/policy"
	"github.com/google/uuid"
)

// AskQuestion translates a natural-language question into SQL, executes
// it, and renders the result as a report or a chart description
// depending on the requested format.
//
// Failures between SQL generation and execution surface as
// *domain.SQLError; failures while rendering the answer surface as
// *domain.ProcessingError. Nothing is retried.
func (s *Service) AskQuestion(ctx context.Context, question, format string) (*domain.AskResult, error) {
	schema, err := s.store.DescribeSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to describe schema: %w", err)
	}

	sqlText, results, err := s.generateAndExecute(ctx, question, format, schema)
	if err != nil {
		s.recordQuery(ctx, question, sqlText, format, domain.QueryStatusSQLFailed, err)
		return nil, &domain.SQLError{Err: err}
	}
	s.recordQuery(ctx, question, sqlText, format, domain.QueryStatusOK, nil)

	if format == domain.FormatReport {
		analysis, err := s.generateAnalysis(ctx, question, results)
		if err != nil {
			return nil, &domain.ProcessingError{Err: err}
		}
		return &domain.AskResult{Type: "report", Analysis: analysis}, nil
	}

	chart, err := s.generateChart(ctx, question, results, format)
	if err != nil {
		return nil, &domain.ProcessingError{Err: err}
	}
	return &domain.AskResult{Type: "chart", Data: chart}, nil
}

// History returns the most recent query history entries.
func (s *Service) History(ctx context.Context, limit int) ([]domain.QueryHistoryEntry, error) {
	return s.store.ListQueryHistory(ctx, limit)
}

// generateAndExecute asks the model for a SQL translation and runs the
// resulting statement verbatim against the store.
func (s *Service) generateAndExecute(ctx context.Context, question, format, schema string) (string, [][]any, error) {
	resp, err := s.llm.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model: s.cfg.LLMModel,
		Messages: []llm.ChatMessage{
			{Role: "user", Content: buildSQLPrompt(schema, question)},
		},
	})
	if err != nil {
		return "", nil, err
	}

	sqlText := StripFences(resp.Content())

	decision, err := s.policy.Evaluate(ctx, policy.Input{SQL: sqlText, Format: format})
	if err != nil {
		return sqlText, nil, err
	}
	if decision != "allow" {
		return sqlText, nil, fmt.Errorf("statement blocked by policy")
	}

	results, err := s.store.ExecuteQuery(ctx, sqlText)
	if err != nil {
		return sqlText, nil, err
	}
	return sqlText, results, nil
}

// generateAnalysis asks the model for a prose analysis of the rows.
func (s *Service) generateAnalysis(ctx context.Context, question string, results [][]any) (string, error) {
	resp, err := s.llm.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model: s.cfg.LLMModel,
		Messages: []llm.ChatMessage{
			{Role: "user", Content: buildAnalysisPrompt(question, results)},
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content()), nil
}

// generateChart asks the model for chart JSON matching the shape of the
// requested format and parses it. The parsed structure is checked for
// JSON well-formedness only.
func (s *Service) generateChart(ctx context.Context, question string, results [][]any, format string) (map[string]any, error) {
	template := barLineTemplate
	if domain.ShapeForFormat(format) == domain.ChartShapePie {
		template = pieTemplate
	}

	resp, err := s.llm.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model: s.cfg.LLMModel,
		Messages: []llm.ChatMessage{
			{Role: "user", Content: buildChartPrompt(question, results, format, template)},
		},
	})
	if err != nil {
		return nil, err
	}

	var chart map[string]any
	if err := json.Unmarshal([]byte(StripFences(resp.Content())), &chart); err != nil {
		return nil, fmt.Errorf("invalid chart JSON: %w", err)
	}
	return chart, nil
}

// recordQuery appends to the query history. History is best effort and
// never fails the request.
func (s *Service) recordQuery(ctx context.Context, question, sqlText, format string, status domain.QueryStatus, cause error) {
	entry := &domain.QueryHistoryEntry{
		ID:           "qry_" + uuid.New().String()[:8],
		Question:     question,
		GeneratedSQL: sqlText,
		Format:       format,
		Status:       status,
		CreatedAt:    time.Now(),
	}
	if cause != nil {
		entry.Error = cause.Error()
	}
	if err := s.store.RecordQuery(ctx, entry); err != nil {
		log.Printf("WARN: failed to record query history: %v", err)
	}
}
