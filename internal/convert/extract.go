// Copyright q9good, 2026. All rights reserved.

// Package convert mirrors a directory tree of PDF filings into a tree of
// plain-text files, delegating text extraction to pluggable backends.
package convert

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/q9good/sse-crawler/pkg/types"
)

// Extractor produces the plain text of a PDF file. Different backends
// (in-process parsing, the pdftotext binary) implement this interface.
type Extractor interface {
	// Extract reads the PDF at pdfPath and returns its text content.
	Extract(pdfPath string) (string, error)
}

// NewExtractor returns the extractor for the configured backend.
func NewExtractor(backend types.ExtractionBackend) (Extractor, error) {
	switch backend {
	case types.BackendPDF, "":
		return &PDFExtractor{}, nil
	case types.BackendPdftotext:
		return NewPdftotextExtractor(""), nil
	default:
		return nil, fmt.Errorf("unknown extraction backend %q", backend)
	}
}

// PDFExtractor extracts text in-process. Pages are visited in document
// order and their text is concatenated directly, with no separator between
// pages; the output for an N-page document is exactly the per-page texts
// joined in page order.
type PDFExtractor struct{}

// Extract opens pdfPath and returns the concatenated per-page plain text.
func (e *PDFExtractor) Extract(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting page %d of %s: %w", i, pdfPath, err)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
