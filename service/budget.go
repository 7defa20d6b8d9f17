package service

import "unicode/utf8"

// TruncateContent keeps a strict prefix of s up to limit bytes, backing
// the cut point up to a rune boundary so the result stays valid UTF-8.
// A non-positive limit leaves s unchanged.
func TruncateContent(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	end := limit
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	if end == 0 {
		end = limit
	}
	return s[:end]
}

// ContentBudget enforces the hard ceilings on content fed to the main
// model call: one per document and one on the combined prompt content.
// Truncation is a plain prefix cut, no semantic boundary handling.
type ContentBudget struct {
	DocumentLimit int
	CombinedLimit int
}

func (b ContentBudget) ApplyDocument(content string) string {
	return TruncateContent(content, b.DocumentLimit)
}

func (b ContentBudget) ApplyCombined(content string) string {
	return TruncateContent(content, b.CombinedLimit)
}
