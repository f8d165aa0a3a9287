// Copyright q9good, 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/q9good/sse-crawler/pkg/types"
)

// Status is the outcome of converting a single source file.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Recorder receives per-file conversion outcomes. A nil Recorder disables
// recording.
type Recorder interface {
	Record(sourcePath, outputPath string, status Status, sourceModTime time.Time) error
}

// BatchResult holds the outcome of a tree conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFile converts one source file, writing its extracted text to
// outPath. If outPath already exists the file is skipped; existence is the
// only completion check, no content is verified. The output is written in
// one WriteFile call after extraction succeeds, so a failed extraction
// leaves nothing behind at outPath.
func ConvertFile(ext Extractor, srcPath, outPath string, w io.Writer) Status {
	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", srcPath)
		return StatusSkipped
	}

	text, err := ext.Extract(srcPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", srcPath, err)
		return StatusFailed
	}

	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", srcPath, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s\n", srcPath)
	return StatusConverted
}

// ConvertTree walks cfg.InputRoot depth-first, siblings in lexical order,
// and mirrors it under cfg.OutputRoot: every directory is materialized on
// the output side before its files are processed, and every regular file
// is converted through ext one at a time. An empty input tree still
// produces the mirrored output root. Walk errors (unreadable directories,
// an uncreatable output directory) abort the run; per-file extraction
// failures are logged and counted, and the walk continues.
func ConvertTree(cfg types.ConvertConfig, ext Extractor, rec Recorder, w io.Writer) (BatchResult, error) {
	var result BatchResult

	info, err := os.Stat(cfg.InputRoot)
	if err != nil {
		return result, fmt.Errorf("reading input root: %w", err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("input root %s is not a directory", cfg.InputRoot)
	}

	err = filepath.WalkDir(cfg.InputRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		outPath, err := DeriveOutputPath(cfg.InputRoot, cfg.OutputRoot, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			fmt.Fprintf(w, "processing %s\n", path)
			if err := os.MkdirAll(outPath, 0o755); err != nil {
				return fmt.Errorf("creating output directory %s: %w", outPath, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		status := ConvertFile(ext, path, outPath, w)
		switch status {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}

		if rec != nil {
			modTime := time.Time{}
			if fi, err := d.Info(); err == nil {
				modTime = fi.ModTime()
			}
			if err := rec.Record(path, outPath, status, modTime); err != nil {
				fmt.Fprintf(w, "warning: manifest record for %s failed: %v\n", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}
