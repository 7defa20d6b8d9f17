package service

import (
	"bytes"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PlaceholderContent is substituted when a document yields no extractable
// text, so the pipeline always has something to chunk and summarize.
const PlaceholderContent = "This document could not be converted to text. " +
	"It may be a scanned or image-only PDF with no extractable text layer."

// TextExtractor converts raw document bytes to plain text. An empty
// result means extraction produced nothing usable.
type TextExtractor interface {
	ExtractText(data []byte) string
}

// PDFService extracts text from PDF bytes using the poppler pdftotext
// utility.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// ExtractText writes the PDF to a temporary file, runs pdftotext over it
// and cleans the output. It never fails upward: extraction problems
// degrade to an empty string, which the content resolver replaces with
// PlaceholderContent.
func (s *PDFService) ExtractText(data []byte) string {
	tmpFile, err := os.CreateTemp("", "docqa-*.pdf")
	if err != nil {
		log.Printf("Warning: failed to create temp file for extraction: %v", err)
		return ""
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		log.Printf("Warning: failed to write temp file for extraction: %v", err)
		return ""
	}
	tmpFile.Close()

	text, err := extractTextWithPdftotext(tmpPath)
	if err != nil {
		log.Printf("Warning: pdftotext extraction failed: %v", err)
		return ""
	}
	return cleanText(text)
}

// extractTextWithPdftotext extracts the full document text using the
// pdftotext utility, writing to stdout.
func extractTextWithPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext",
		"-enc", "UTF-8", "-nopgbrk",
		path, "-")
	var txtOut bytes.Buffer
	cmd.Stdout = &txtOut

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return txtOut.String(), nil
}

func cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
		"  ":     " ",  // Multiple spaces to single space
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}

	return strings.TrimSpace(cleaned)
}

// GetFileNameWithoutExt extracts the filename without extension from a
// file path.
func GetFileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	return base
}
