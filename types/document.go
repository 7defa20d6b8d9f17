package types

// Document represents an uploaded document record.
type Document struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Title     string `json:"title" bson:"title"`
	FilePath  string `json:"file_path" bson:"file_path"`
	Content   string `json:"content,omitempty" bson:"content,omitempty"`
	Analysis  string `json:"analysis,omitempty" bson:"analysis,omitempty"`
	CreatedAt int64  `json:"created_at" bson:"created_at"`
	UpdatedAt int64  `json:"updated_at" bson:"updated_at"`
}

// DocumentMeta is the caller-supplied document reference used in
// cross-document queries. Content is optional; when empty the document
// text is fetched from storage by FilePath.
type DocumentMeta struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FilePath string `json:"file_path"`
	Content  string `json:"content,omitempty"`
}

// RelevanceResult is the outcome of a single chunk relevance check.
type RelevanceResult struct {
	Relevant bool   `json:"relevant"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// QueryServiceConfig contains the tuning knobs for the query pipeline.
// The limits are explicit fields so tests can use small values.
type QueryServiceConfig struct {
	ChunkSize              int     `mapstructure:"chunk_size"`
	ChunkPreviewSize       int     `mapstructure:"chunk_preview_size"`
	ExcerptSize            int     `mapstructure:"excerpt_size"`
	MaxChunksPerDocument   int     `mapstructure:"max_chunks_per_document"`
	MaxDocumentsSampled    int     `mapstructure:"max_documents_sampled"`
	MaxExcerptsPerDocument int     `mapstructure:"max_excerpts_per_document"`
	MaxExcerpts            int     `mapstructure:"max_excerpts"`
	DocumentContentLimit   int     `mapstructure:"document_content_limit"`
	CombinedContentLimit   int     `mapstructure:"combined_content_limit"`
	MaxAnswerTokens        int     `mapstructure:"max_answer_tokens"`
	MaxRelevanceTokens     int     `mapstructure:"max_relevance_tokens"`
	Temperature            float32 `mapstructure:"temperature"`
}

// DefaultQueryServiceConfig bounds a single request to roughly
// MaxDocumentsSampled * MaxChunksPerDocument relevance calls of
// ChunkPreviewSize characters each.
var DefaultQueryServiceConfig = QueryServiceConfig{
	ChunkSize:              4000,
	ChunkPreviewSize:       2000,
	ExcerptSize:            600,
	MaxChunksPerDocument:   6,
	MaxDocumentsSampled:    5,
	MaxExcerptsPerDocument: 2,
	MaxExcerpts:            8,
	DocumentContentLimit:   24000,
	CombinedContentLimit:   48000,
	MaxAnswerTokens:        1024,
	MaxRelevanceTokens:     200,
	Temperature:            0.2,
}
