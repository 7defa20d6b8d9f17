package types

// QueryResponse is the wire response for document queries. Analysis is
// always populated on a 200, even when the main model call failed and a
// fallback message was substituted. Model carries the identifier the
// provider reports, when available.
type QueryResponse struct {
	Analysis string `json:"analysis,omitempty"`
	Model    string `json:"model,omitempty"`
	Error    string `json:"error,omitempty"`
}

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name,omitempty"`
	FilePath     string `json:"file_path"`
}

type ListDocumentsResponse struct {
	Documents []*Document `json:"documents"`
}
