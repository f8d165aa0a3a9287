// Copyright q9good, 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeSamplePDF builds a minimal valid PDF with one page per entry of
// pageTexts, each page showing its text with the built-in Helvetica font.
// Object offsets and stream lengths are computed, not hand-counted.
func writeSamplePDF(t *testing.T, path string, pageTexts []string) {
	t.Helper()

	n := len(pageTexts)
	fontObj := 3 + 2*n

	var objs []string
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, n)
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), n))

	for i := range pageTexts {
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, 3+n+i))
	}
	for _, text := range pageTexts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream",
			len(stream), stream))
	}
	objs = append(objs,
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefOff := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objs)+1, xrefOff)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPDFExtractorExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.pdf")
	writeSamplePDF(t, path, []string{"Hello", "World"})

	ext := &PDFExtractor{}
	got, err := ext.Extract(path)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	// Each page's text object contributes a leading newline; the pages
	// themselves are joined with no separator.
	want := "\nHello\nWorld"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestPDFExtractorExtractSinglePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.pdf")
	writeSamplePDF(t, path, []string{"Annual Report 2021"})

	ext := &PDFExtractor{}
	got, err := ext.Extract(path)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if got != "\nAnnual Report 2021" {
		t.Errorf("Extract() = %q", got)
	}
}

func TestPDFExtractorExtractInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	ext := &PDFExtractor{}
	if _, err := ext.Extract(path); err == nil {
		t.Error("Extract() on a non-PDF file succeeded, want error")
	}
}

func TestConvertFileRealExtraction(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "filing.pdf")
	outPath := filepath.Join(dir, "filing.txt")
	writeSamplePDF(t, srcPath, []string{"Prospectus"})

	var log bytes.Buffer
	status := ConvertFile(&PDFExtractor{}, srcPath, outPath, &log)
	if status != StatusConverted {
		t.Fatalf("ConvertFile() = %v, want %v (log: %s)", status, StatusConverted, log.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\nProspectus" {
		t.Errorf("output content = %q", string(data))
	}
}
