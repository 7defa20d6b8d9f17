package service

import (
	"fmt"
	"strings"
)

const answerSystemPrompt = "You are a document analysis assistant. You answer strictly " +
	"from the provided document content and never fabricate information."

// NoRelevantContentMessage is returned without calling the main model
// when a cross-document search collected no relevant excerpts.
const NoRelevantContentMessage = "No relevant information about this question could be found in the selected documents."

// ModelUnavailableMessage is the user-facing fallback when the main
// model call fails.
const ModelUnavailableMessage = "The analysis service is temporarily unavailable. Please try your question again in a moment."

// SourcedExcerpt is a relevant excerpt tagged with the title of the
// document it came from.
type SourcedExcerpt struct {
	Title   string
	Excerpt string
}

// BuildSummaryPrompt asks for a general summary of one document.
func BuildSummaryPrompt(title string, content string) string {
	return fmt.Sprintf(
		"Summarize the following document titled %q. Cover its purpose, key points and any notable details.\n\nDocument content:\n%s",
		title, content,
	)
}

// BuildQuestionPrompt asks a targeted question against one document's
// content.
func BuildQuestionPrompt(title string, content string, question string) string {
	return fmt.Sprintf(
		"Answer the question using only the document content below. If the content does not contain the answer, state clearly that the document does not answer the question. Do not invent information.\n\nDocument: %s\n\nDocument content:\n%s\n\nQuestion: %s",
		title, content, question,
	)
}

// BuildSearchPrompt asks a question against excerpts gathered across
// several documents. The model is instructed to use the fixed
// no-results phrase verbatim so callers can recognize the outcome.
func BuildSearchPrompt(excerpts []SourcedExcerpt, question string) string {
	var b strings.Builder
	for _, e := range excerpts {
		fmt.Fprintf(&b, "--- From %q ---\n%s\n\n", e.Title, e.Excerpt)
	}
	return fmt.Sprintf(
		"Answer the question using only the document excerpts below. Mention which document the answer comes from. If the excerpts do not contain the answer, reply exactly: %q. Do not invent information.\n\nExcerpts:\n%s\nQuestion: %s",
		NoRelevantContentMessage, b.String(), question,
	)
}
