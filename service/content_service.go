package service

import (
	"context"
	"log"
	"strings"

	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/storage"
)

// ContentResolver makes sure a document's text is available: cached
// content is used as-is, otherwise the raw bytes are fetched from
// storage and run through the extractor. Resolved text is persisted back
// to the document record in the background; that write is best-effort
// and never fails the surrounding query.
type ContentResolver struct {
	store     storage.Storage
	repo      repository.DocumentRepo
	extractor TextExtractor
	tasks     TaskRunner
}

func NewContentResolver(
	store storage.Storage,
	repo repository.DocumentRepo,
	extractor TextExtractor,
	tasks TaskRunner,
) *ContentResolver {
	return &ContentResolver{
		store:     store,
		repo:      repo,
		extractor: extractor,
		tasks:     tasks,
	}
}

// Resolve returns the text for id/path, preferring cached content.
// Returns storage.ErrObjectNotFound when the stored object is missing.
func (r *ContentResolver) Resolve(ctx context.Context, id string, filePath string, cached string) (string, error) {
	if strings.TrimSpace(cached) != "" {
		return cached, nil
	}

	data, err := r.store.Download(ctx, filePath)
	if err != nil {
		return "", err
	}

	text := r.extractor.ExtractText(data)
	if strings.TrimSpace(text) == "" {
		text = PlaceholderContent
	}

	if id != "" {
		content := text
		docID := id
		r.tasks.Go(func() {
			// Detached from the request context: a finished request must
			// not cancel its own cache-back.
			if err := r.repo.UpdateContent(context.Background(), docID, content); err != nil {
				log.Printf("Warning: failed to persist content for document %s: %v", docID, err)
			}
		})
	}

	return text, nil
}
