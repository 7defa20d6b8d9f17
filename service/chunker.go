package service

import "unicode/utf8"

// SplitChunks splits text into consecutive non-overlapping chunks of at
// most size bytes, in document order. Concatenating the result
// reproduces the input exactly. Cut points back up to the nearest rune
// boundary so no chunk carries a torn multi-byte character. Empty text
// or a non-positive size yields nil.
func SplitChunks(text string, size int) []string {
	if text == "" || size <= 0 {
		return nil
	}
	chunks := make([]string, 0, (len(text)+size-1)/size)
	for len(text) > size {
		end := size
		for end > 0 && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == 0 {
			// size is smaller than the leading rune; cut mid-rune rather
			// than loop forever.
			end = size
		}
		chunks = append(chunks, text[:end])
		text = text[end:]
	}
	return append(chunks, text)
}
