package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tieubaoca/docqa-be/types"
)

const relevanceSystemPrompt = "You classify whether a text fragment contains information " +
	"that answers a question. Respond with JSON only, no prose: " +
	`{"relevant": true, "excerpt": "<the most pertinent passage>"} or {"relevant": false}.`

// RelevanceFilter asks a cheap model whether a chunk likely answers the
// question. It fails open: any call or parse problem marks the chunk
// relevant with a bounded prefix as excerpt, so a transient error cannot
// silently drop a document's only content. The call is never retried.
type RelevanceFilter struct {
	ai          CompletionService
	model       string
	previewSize int
	excerptSize int
	maxTokens   int
}

func NewRelevanceFilter(ai CompletionService, model string, cfg types.QueryServiceConfig) *RelevanceFilter {
	return &RelevanceFilter{
		ai:          ai,
		model:       model,
		previewSize: cfg.ChunkPreviewSize,
		excerptSize: cfg.ExcerptSize,
		maxTokens:   cfg.MaxRelevanceTokens,
	}
}

func (f *RelevanceFilter) Check(ctx context.Context, chunk string, question string) types.RelevanceResult {
	preview := TruncateContent(chunk, f.previewSize)
	fallbackExcerpt := TruncateContent(chunk, f.excerptSize)

	prompt := fmt.Sprintf("Question: %s\n\nText fragment:\n%s", question, preview)
	result, err := f.ai.Complete(ctx, CompletionRequest{
		Model:     f.model,
		System:    relevanceSystemPrompt,
		Prompt:    prompt,
		MaxTokens: f.maxTokens,
	})
	if err != nil {
		log.Printf("Warning: relevance check failed, keeping chunk: %v", err)
		return types.RelevanceResult{Relevant: true, Excerpt: fallbackExcerpt}
	}

	parsed, ok := parseRelevanceReply(result.Text)
	if !ok {
		// Malformed reply: scan the raw text for an affirmative marker.
		lower := strings.ToLower(result.Text)
		if strings.Contains(lower, `"relevant": true`) || strings.Contains(lower, `"relevant":true`) {
			return types.RelevanceResult{Relevant: true, Excerpt: fallbackExcerpt}
		}
		return types.RelevanceResult{Relevant: false}
	}

	if !parsed.Relevant {
		return types.RelevanceResult{Relevant: false}
	}
	excerpt := TruncateContent(parsed.Excerpt, f.excerptSize)
	if strings.TrimSpace(excerpt) == "" {
		excerpt = fallbackExcerpt
	}
	return types.RelevanceResult{Relevant: true, Excerpt: excerpt}
}

// parseRelevanceReply extracts the JSON object from the model reply,
// tolerating surrounding prose or code fences.
func parseRelevanceReply(text string) (*types.RelevanceResult, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, false
	}
	var result types.RelevanceResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, false
	}
	return &result, true
}
