package types

// QueryRequest is the wire request for document queries. A non-empty
// Documents array selects cross-document mode; otherwise the request is
// a single-document query keyed by DocumentID. Question is optional in
// single-document mode (no question means "summarize").
type QueryRequest struct {
	DocumentID string         `json:"document_id,omitempty"`
	Question   string         `json:"question,omitempty"`
	Documents  []DocumentMeta `json:"documents,omitempty"`
}

// CrossDocument reports whether the request targets a document set.
func (r *QueryRequest) CrossDocument() bool {
	return len(r.Documents) > 0
}

type UploadRequest struct {
	Title string `json:"title"`
}

type ListDocumentsRequest struct {
	Limit int64 `json:"limit"`
}
