// Copyright q9good, 2026. All rights reserved.

package manifest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q9good/sse-crawler/internal/convert"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "conversions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndLookup(t *testing.T) {
	s := testStore(t)
	modTime := time.Date(2022, 1, 10, 8, 0, 0, 0, time.UTC)

	err := s.Record("Download/A/doc.pdf", "txt/A/doc.txt", convert.StatusConverted, modTime)
	require.NoError(t, err)

	e, err := s.Lookup("Download/A/doc.pdf")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "txt/A/doc.txt", e.OutputPath)
	assert.Equal(t, convert.StatusConverted, e.Status)
	assert.True(t, e.SourceModTime.Equal(modTime))
	assert.False(t, e.CompletedAt.IsZero())
}

func TestLookupMissing(t *testing.T) {
	s := testStore(t)
	e, err := s.Lookup("Download/never-seen.pdf")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestRecordUpsert(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Record("Download/A/doc.pdf", "txt/A/doc.txt", convert.StatusFailed, time.Time{}))
	require.NoError(t, s.Record("Download/A/doc.pdf", "txt/A/doc.txt", convert.StatusConverted, time.Time{}))

	e, err := s.Lookup("Download/A/doc.pdf")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, convert.StatusConverted, e.Status)

	summary, err := s.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total())
}

func TestSummarizeAndFailures(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Record("Download/A/a.pdf", "txt/A/a.txt", convert.StatusConverted, time.Time{}))
	require.NoError(t, s.Record("Download/A/b.pdf", "txt/A/b.txt", convert.StatusSkipped, time.Time{}))
	require.NoError(t, s.Record("Download/B/c.pdf", "txt/B/c.txt", convert.StatusFailed, time.Time{}))
	require.NoError(t, s.Record("Download/B/a.pdf", "txt/B/a.txt", convert.StatusFailed, time.Time{}))

	summary, err := s.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Converted)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 4, summary.Total())

	failures, err := s.Failures()
	require.NoError(t, err)
	require.Len(t, failures, 2)
	assert.Equal(t, "Download/B/a.pdf", failures[0].SourcePath)
	assert.Equal(t, "Download/B/c.pdf", failures[1].SourcePath)
}

func TestOpenTwiceReusesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversions.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Record("Download/a.pdf", "txt/a.txt", convert.StatusConverted, time.Time{}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	e, err := s2.Lookup("Download/a.pdf")
	require.NoError(t, err)
	require.NotNil(t, e)
}
