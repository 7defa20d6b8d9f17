package service

import (
	"context"
)

// CompletionRequest is a single blocking completion call. The same
// contract serves both the cheap relevance checks and the main
// answer/summary call, with different models and token caps.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

type CompletionResult struct {
	Text  string
	Model string
}

type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}
