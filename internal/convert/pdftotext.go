// Copyright q9good, 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os/exec"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdout *bytes.Buffer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdout *bytes.Buffer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

// PdftotextExtractor extracts text by running the poppler pdftotext binary
// with layout preservation, writing to stdout.
type PdftotextExtractor struct {
	bin  string
	exec executor
}

// NewPdftotextExtractor creates an extractor using the given binary path.
// An empty path means "pdftotext" resolved from PATH.
func NewPdftotextExtractor(bin string) *PdftotextExtractor {
	if bin == "" {
		bin = binPdftotext
	}
	return &PdftotextExtractor{bin: bin, exec: &osExecutor{}}
}

// Available reports whether the binary exists on PATH.
func (e *PdftotextExtractor) Available() bool {
	_, err := e.exec.LookPath(e.bin)
	return err == nil
}

// Extract runs pdftotext -layout on pdfPath and returns stdout.
func (e *PdftotextExtractor) Extract(pdfPath string) (string, error) {
	var out bytes.Buffer
	if err := e.exec.RunPiped(e.bin, []string{"-layout", pdfPath, "-"}, &out); err != nil {
		return "", fmt.Errorf("running %s on %s: %w", e.bin, pdfPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", e.bin, pdfPath)
	}
	return out.String(), nil
}
