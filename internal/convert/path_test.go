// Copyright q9good, 2026. All rights reserved.

package convert

import (
	"path/filepath"
	"testing"
)

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "pdf at top level",
			path: filepath.Join("Download", "doc.pdf"),
			want: filepath.Join("txt", "doc.txt"),
		},
		{
			name: "nested pdf",
			path: filepath.Join("Download", "公司A", "申报稿", "招股说明书.pdf"),
			want: filepath.Join("txt", "公司A", "申报稿", "招股说明书.txt"),
		},
		{
			name: "uppercase extension",
			path: filepath.Join("Download", "A", "doc.PDF"),
			want: filepath.Join("txt", "A", "doc.txt"),
		},
		{
			name: "non-pdf file keeps its name",
			path: filepath.Join("Download", "A", "notes.log"),
			want: filepath.Join("txt", "A", "notes.log"),
		},
		{
			name: "directory maps to directory",
			path: filepath.Join("Download", "A", "结果"),
			want: filepath.Join("txt", "A", "结果"),
		},
		{
			name: "input root maps to output root",
			path: "Download",
			want: "txt",
		},
		{
			name: "bare dotfile extension still substituted",
			path: filepath.Join("Download", ".pdf"),
			want: filepath.Join("txt", ".txt"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveOutputPath("Download", "txt", tt.path)
			if err != nil {
				t.Fatalf("DeriveOutputPath(%q) error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("DeriveOutputPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDeriveOutputPathOutsideRoot(t *testing.T) {
	if _, err := DeriveOutputPath("Download", "txt", filepath.Join("elsewhere", "doc.pdf")); err == nil {
		t.Error("expected error for path outside the input root")
	}
}

func TestDeriveOutputPathCollision(t *testing.T) {
	// doc.pdf and doc.txt both derive the same output; the converter does
	// not guard against this, it is last-writer-wins.
	a, err := DeriveOutputPath("Download", "txt", filepath.Join("Download", "doc.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := DeriveOutputPath("Download", "txt", filepath.Join("Download", "doc.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("expected colliding outputs, got %q and %q", a, b)
	}
}
