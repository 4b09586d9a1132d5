// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// Backend produces a language-model candidate for a sectioned document.
// Implementations own provider selection, prompting, retries, and
// failover; the pipeline only consumes the resolved candidate or its
// absence. Per the Strategy pattern, tests supply a mock.
type Backend interface {
	Infer(ctx context.Context, sections types.Sections) (*types.LLMCandidate, error)
}

// Static is a Backend that returns a fixed candidate. It backs offline
// runs fed from a pre-computed ensemble result file, and tests.
type Static struct {
	Candidate *types.LLMCandidate
	Err       error
}

func (s Static) Infer(_ context.Context, _ types.Sections) (*types.LLMCandidate, error) {
	return s.Candidate, s.Err
}
