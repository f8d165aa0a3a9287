// Copyright q9good, 2026. All rights reserved.

package convert

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	pdfExt = ".pdf"
	txtExt = ".txt"
)

// DeriveOutputPath maps a source path under inputRoot to its mirror under
// outputRoot, replacing a trailing .pdf extension (case-insensitive) with
// .txt. Files without a .pdf extension keep their name unchanged. The
// mapping is pure string work; it never touches the filesystem and performs
// no collision handling, so two sources that derive the same output will
// overwrite each other last-writer-wins.
func DeriveOutputPath(inputRoot, outputRoot, path string) (string, error) {
	rel, err := filepath.Rel(inputRoot, path)
	if err != nil {
		return "", fmt.Errorf("relativizing %s against %s: %w", path, inputRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside input root %s", path, inputRoot)
	}

	if strings.EqualFold(filepath.Ext(rel), pdfExt) {
		rel = rel[:len(rel)-len(pdfExt)] + txtExt
	}
	return filepath.Join(outputRoot, rel), nil
}
