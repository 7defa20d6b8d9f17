package service_test

import (
	"context"
	"time"

	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/storage"
	"github.com/tieubaoca/docqa-be/types"
)

// fakeCompletion records every completion request and delegates to a
// scripted handler.
type fakeCompletion struct {
	handler func(req service.CompletionRequest) (*service.CompletionResult, error)
	calls   []service.CompletionRequest
}

func (f *fakeCompletion) Complete(ctx context.Context, req service.CompletionRequest) (*service.CompletionResult, error) {
	f.calls = append(f.calls, req)
	return f.handler(req)
}

func (f *fakeCompletion) callsForModel(model string) []service.CompletionRequest {
	var out []service.CompletionRequest
	for _, call := range f.calls {
		if call.Model == model {
			out = append(out, call)
		}
	}
	return out
}

type fakeRepo struct {
	docs            map[string]*types.Document
	contentUpdates  map[string]string
	analysisUpdates map[string]string
}

func newFakeRepo(docs ...*types.Document) *fakeRepo {
	r := &fakeRepo{
		docs:            make(map[string]*types.Document),
		contentUpdates:  make(map[string]string),
		analysisUpdates: make(map[string]string),
	}
	for _, doc := range docs {
		r.docs[doc.ID] = doc
	}
	return r
}

func (r *fakeRepo) CreateDocument(ctx context.Context, doc *types.Document) error {
	doc.CreatedAt = time.Now().Unix()
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeRepo) ListDocuments(ctx context.Context, limit int64) ([]*types.Document, error) {
	var docs []*types.Document
	for _, doc := range r.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *fakeRepo) UpdateContent(ctx context.Context, id string, content string) error {
	r.contentUpdates[id] = content
	return nil
}

func (r *fakeRepo) UpdateAnalysis(ctx context.Context, id string, analysis string) error {
	r.analysisUpdates[id] = analysis
	return nil
}

func (r *fakeRepo) DeleteDocument(ctx context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

type fakeStorage struct {
	objects   map[string][]byte
	downloads map[string]int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:   make(map[string][]byte),
		downloads: make(map[string]int),
	}
}

func (s *fakeStorage) Download(ctx context.Context, path string) ([]byte, error) {
	s.downloads[path]++
	data, ok := s.objects[path]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (s *fakeStorage) Upload(ctx context.Context, path string, data []byte) (string, error) {
	s.objects[path] = data
	return path, nil
}

func (s *fakeStorage) Remove(ctx context.Context, paths []string) error {
	for _, path := range paths {
		delete(s.objects, path)
	}
	return nil
}

// extractorFunc adapts a function to service.TextExtractor.
type extractorFunc func(data []byte) string

func (f extractorFunc) ExtractText(data []byte) string {
	return f(data)
}

// passthroughExtractor treats stored bytes as the extracted text.
var passthroughExtractor = extractorFunc(func(data []byte) string {
	return string(data)
})

// syncRunner executes background tasks inline so tests can assert their
// effects without timing races.
type syncRunner struct {
	ran int
}

func (r *syncRunner) Go(task func()) {
	r.ran++
	task()
}
