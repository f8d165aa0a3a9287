// Copyright q9good, 2026. All rights reserved.

package crawl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/q9good/sse-crawler/internal/httputil"
	"github.com/q9good/sse-crawler/pkg/types"
)

const (
	metadataDir   = "metadata"
	failedLogName = "failed_logs.txt"
)

// artifactRoot is the directory crawl bookkeeping lands in: the parent of
// the download root. The download root itself must hold nothing but the
// filing tree, because the convert stage walks every regular file in it.
func artifactRoot(downloadDir string) string {
	return filepath.Dir(filepath.Clean(downloadDir))
}

// BatchResult holds the outcome of a crawl run.
type BatchResult struct {
	Processed  int
	Downloaded int
	Skipped    int
	Failed     int

	// FailedCompanies lists companies whose queries failed outright;
	// they need manual follow-up.
	FailedCompanies []string
}

// HasFailures reports whether any company or download failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0 || len(r.FailedCompanies) > 0
}

// ProcessCompany queries the overview, disclosures, and announcements for
// one company and assembles its crawl record. No files are downloaded yet.
func (c *Client) ProcessCompany(ctx context.Context, name string) (*types.CompanyRecord, error) {
	info, err := c.CompanyOverview(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("querying overview for %s: %w", name, err)
	}

	disclosures, err := c.Disclosures(ctx, info.AuditNumber)
	if err != nil {
		return nil, fmt.Errorf("querying disclosures for %s: %w", name, err)
	}

	announcements, err := c.Announcements(ctx, info.AuditNumber)
	if err != nil {
		return nil, fmt.Errorf("querying announcements for %s: %w", name, err)
	}

	return &types.CompanyRecord{
		Company:   *info,
		Filings:   append(disclosures, announcements...),
		CrawledAt: time.Now().UTC(),
	}, nil
}

// DownloadFilings fetches each filing into the download root, creating the
// company's category directories first. Existing files are skipped; the
// rest are downloaded one at a time with the configured delay in between.
// Individual download failures are logged and counted, and the batch
// continues.
func (c *Client) DownloadFilings(ctx context.Context, company string, filings []types.Filing, w io.Writer) (downloaded, skipped, failed int) {
	for _, dir := range CategoryDirs() {
		path := filepath.Join(c.cfg.DownloadDir, company, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			fmt.Fprintf(w, "warning: creating %s: %v\n", path, err)
		}
	}

	first := true
	for _, f := range filings {
		destPath := filepath.Join(c.cfg.DownloadDir, f.RelPath)
		if _, err := os.Stat(destPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", f.RelPath)
			skipped++
			continue
		}

		if !first && c.cfg.DownloadDelay > 0 {
			select {
			case <-ctx.Done():
				fmt.Fprintf(w, "failed:  %s (%v)\n", f.RelPath, ctx.Err())
				failed++
				continue
			case <-time.After(c.cfg.DownloadDelay):
			}
		}
		first = false

		if err := c.downloadFile(ctx, f.URL, destPath); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", f.RelPath, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "downloaded: %s\n", f.RelPath)
		downloaded++
	}
	return downloaded, skipped, failed
}

// downloadFile fetches url to destPath using a temporary file so a partial
// download never appears at the destination.
func (c *Client) downloadFile(ctx context.Context, rawURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Referer", sseReferer)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".crawl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// CrawlBatch processes each company in order: query its records, download
// its filings, and write its metadata record. Companies whose queries fail
// are collected and appended to failed_logs.txt next to the download root
// for manual follow-up.
func CrawlBatch(ctx context.Context, client *Client, companies []string, w io.Writer) (BatchResult, error) {
	var result BatchResult

	for _, name := range companies {
		fmt.Fprintf(w, "processing %s\n", name)

		record, err := client.ProcessCompany(ctx, name)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.FailedCompanies = append(result.FailedCompanies, name)
			continue
		}
		result.Processed++

		downloaded, skipped, failed := client.DownloadFilings(ctx, record.Company.Name, record.Filings, w)
		result.Downloaded += downloaded
		result.Skipped += skipped
		result.Failed += failed

		if err := writeRecord(client.cfg.DownloadDir, record); err != nil {
			fmt.Fprintf(w, "warning: writing metadata for %s: %v\n", name, err)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d companies, %d downloaded, %d skipped, %d failed\n",
		result.Processed, result.Downloaded, result.Skipped, result.Failed)

	if len(result.FailedCompanies) > 0 {
		if err := appendFailedLog(client.cfg.DownloadDir, result.FailedCompanies); err != nil {
			return result, fmt.Errorf("writing failed log: %w", err)
		}
		fmt.Fprintf(w, "%d company queries failed, see %s\n",
			len(result.FailedCompanies), filepath.Join(artifactRoot(client.cfg.DownloadDir), failedLogName))
	}
	return result, nil
}

// writeRecord writes the crawl metadata YAML for one company to
// metadata/<company>.yaml next to the download root.
func writeRecord(downloadDir string, record *types.CompanyRecord) error {
	dir := filepath.Join(artifactRoot(downloadDir), metadataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, record.Company.Name+".yaml"), data, 0o644)
}

// appendFailedLog appends company names to failed_logs.txt next to the
// download root, one per line.
func appendFailedLog(downloadDir string, names []string) error {
	root := artifactRoot(downloadDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(root, failedLogName),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(strings.Join(names, "\n") + "\n")
	return err
}

// ReadCompaniesFile loads company names from a file. Names may be
// separated by newlines or commas; blank entries are dropped.
func ReadCompaniesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading companies file: %w", err)
	}

	var names []string
	for _, chunk := range strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	}) {
		if name := strings.TrimSpace(chunk); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
