// Package policy evaluates generated SQL against an OPA policy before
// execution.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.sql_policy.decision"),
		rego.Module("sql_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Input describes a statement about to be executed.
type Input struct {
	SQL    string
	Format string
}

// Evaluate checks the SQL policy. Returns "allow" or "block".
func (e *Engine) Evaluate(ctx context.Context, input Input) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"sql":    input.SQL,
		"format": input.Format,
	}))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "allow", nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}

	return "allow", nil
}

// DefaultPolicy allows every statement through. Operators who want to
// constrain the SQL the model may produce (for example to read-only
// statements) override this module.
const DefaultPolicy = `
package sql_policy

default decision := "allow"

decision := "block" if {
	trim_space(input.sql) == ""
}
`
