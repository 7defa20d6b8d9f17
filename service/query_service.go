package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/storage"
	"github.com/tieubaoca/docqa-be/types"
)

// ProgressFunc receives pipeline stage updates. It may be nil.
type ProgressFunc func(stage string, message string)

// QueryService drives a document query end to end: resolve content,
// chunk and filter, budget, build the prompt, call the model and shape
// the response. One pass per request, no retries; recoverable failures
// are absorbed with safe defaults and only "cannot proceed" conditions
// surface as errors.
type QueryService struct {
	repo     repository.DocumentRepo
	resolver *ContentResolver
	filter   *RelevanceFilter
	ai       CompletionService
	model    string
	cfg      types.QueryServiceConfig
	tasks    TaskRunner
}

func NewQueryService(
	repo repository.DocumentRepo,
	resolver *ContentResolver,
	filter *RelevanceFilter,
	ai CompletionService,
	model string,
	cfg types.QueryServiceConfig,
	tasks TaskRunner,
) *QueryService {
	return &QueryService{
		repo:     repo,
		resolver: resolver,
		filter:   filter,
		ai:       ai,
		model:    model,
		cfg:      cfg,
		tasks:    tasks,
	}
}

func (s *QueryService) Query(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error) {
	return s.QueryWithProgress(ctx, req, nil)
}

func (s *QueryService) QueryWithProgress(ctx context.Context, req *types.QueryRequest, progress ProgressFunc) (*types.QueryResponse, error) {
	if req.CrossDocument() {
		return s.crossDocumentQuery(ctx, req, progress)
	}
	return s.singleDocumentQuery(ctx, req, progress)
}

func (s *QueryService) budget() ContentBudget {
	return ContentBudget{
		DocumentLimit: s.cfg.DocumentContentLimit,
		CombinedLimit: s.cfg.CombinedContentLimit,
	}
}

func (s *QueryService) singleDocumentQuery(ctx context.Context, req *types.QueryRequest, progress ProgressFunc) (*types.QueryResponse, error) {
	notify(progress, "resolving", "Loading document")
	doc, err := s.repo.GetDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	content, err := s.resolver.Resolve(ctx, doc.ID, doc.FilePath, doc.Content)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, repository.ErrDocumentNotFound
		}
		return nil, err
	}

	budget := s.budget()
	question := strings.TrimSpace(req.Question)
	summary := question == ""

	var prompt string
	if summary {
		// Summaries want broad coverage, so the raw prefix is used
		// without relevance filtering.
		bounded := budget.ApplyCombined(budget.ApplyDocument(content))
		prompt = BuildSummaryPrompt(doc.Title, bounded)
	} else {
		notify(progress, "filtering", "Scanning document for relevant passages")
		chunks := s.limitChunks(SplitChunks(content, s.cfg.ChunkSize))

		var parts []string
		for _, chunk := range chunks {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res := s.filter.Check(ctx, chunk, question)
			if res.Relevant {
				parts = append(parts, res.Excerpt)
			}
		}
		if len(parts) == 0 {
			// A targeted question never gets an empty answer context as
			// long as the document has any text.
			parts = chunks
		}
		assembled := budget.ApplyCombined(budget.ApplyDocument(strings.Join(parts, "\n\n")))
		prompt = BuildQuestionPrompt(doc.Title, assembled, question)
	}

	notify(progress, "generating", "Generating answer")
	analysis, model, ok := s.callModel(ctx, prompt)

	if summary && ok {
		docID := doc.ID
		result := analysis
		s.tasks.Go(func() {
			if err := s.repo.UpdateAnalysis(context.Background(), docID, result); err != nil {
				log.Printf("Warning: failed to persist analysis for document %s: %v", docID, err)
			}
		})
	}

	return &types.QueryResponse{
		Analysis: analysis,
		Model:    model,
	}, nil
}

func (s *QueryService) crossDocumentQuery(ctx context.Context, req *types.QueryRequest, progress ProgressFunc) (*types.QueryResponse, error) {
	question := strings.TrimSpace(req.Question)

	docs := req.Documents
	if len(docs) > s.cfg.MaxDocumentsSampled {
		docs = docs[:s.cfg.MaxDocumentsSampled]
	}

	var excerpts []SourcedExcerpt
	for _, meta := range docs {
		if len(excerpts) >= s.cfg.MaxExcerpts {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		notify(progress, "filtering", "Scanning "+meta.Title)

		content, err := s.resolver.Resolve(ctx, meta.ID, meta.FilePath, meta.Content)
		if err != nil {
			// One bad document must not abort the search across the rest.
			log.Printf("Warning: skipping document %s: %v", meta.ID, err)
			continue
		}

		chunks := s.limitChunks(SplitChunks(content, s.cfg.ChunkSize))
		perDoc := 0
		for _, chunk := range chunks {
			if len(excerpts) >= s.cfg.MaxExcerpts || perDoc >= s.cfg.MaxExcerptsPerDocument {
				break
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res := s.filter.Check(ctx, chunk, question)
			if res.Relevant {
				excerpts = append(excerpts, SourcedExcerpt{
					Title:   meta.Title,
					Excerpt: res.Excerpt,
				})
				perDoc++
			}
		}
	}

	if len(excerpts) == 0 {
		// Meaningful terminal state, not an error; the main model is
		// not called.
		return &types.QueryResponse{
			Analysis: NoRelevantContentMessage,
		}, nil
	}

	notify(progress, "generating", "Generating answer")
	prompt := BuildSearchPrompt(s.budgetExcerpts(excerpts), question)
	analysis, model, _ := s.callModel(ctx, prompt)

	return &types.QueryResponse{
		Analysis: analysis,
		Model:    model,
	}, nil
}

// callModel performs the single main completion call. A failure is
// downgraded to a fixed user-facing fallback so the caller always gets
// a response object.
func (s *QueryService) callModel(ctx context.Context, prompt string) (analysis string, model string, ok bool) {
	result, err := s.ai.Complete(ctx, CompletionRequest{
		Model:       s.model,
		System:      answerSystemPrompt,
		Prompt:      prompt,
		MaxTokens:   s.cfg.MaxAnswerTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		log.Printf("Warning: completion call failed: %v", err)
		return ModelUnavailableMessage, "", false
	}
	return result.Text, result.Model, true
}

func (s *QueryService) limitChunks(chunks []string) []string {
	if len(chunks) > s.cfg.MaxChunksPerDocument {
		return chunks[:s.cfg.MaxChunksPerDocument]
	}
	return chunks
}

// budgetExcerpts enforces the per-document and combined ceilings on the
// collected excerpt text before prompt assembly.
func (s *QueryService) budgetExcerpts(excerpts []SourcedExcerpt) []SourcedExcerpt {
	budget := s.budget()
	out := make([]SourcedExcerpt, 0, len(excerpts))
	total := 0
	for _, e := range excerpts {
		text := budget.ApplyDocument(e.Excerpt)
		remaining := budget.CombinedLimit - total
		if budget.CombinedLimit > 0 && remaining <= 0 {
			break
		}
		if budget.CombinedLimit > 0 && len(text) > remaining {
			text = TruncateContent(text, remaining)
		}
		total += len(text)
		out = append(out, SourcedExcerpt{Title: e.Title, Excerpt: text})
	}
	return out
}

func notify(progress ProgressFunc, stage string, message string) {
	if progress != nil {
		progress(stage, message)
	}
}
