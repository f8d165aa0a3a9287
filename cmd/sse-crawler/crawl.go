// Copyright q9good, 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/q9good/sse-crawler/internal/crawl"
	"github.com/q9good/sse-crawler/pkg/types"
)

const (
	defaultTimeout = 60 * time.Second
	defaultDelay   = 1 * time.Second

	// The SSE query gateway rejects non-browser agents.
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.93 Safari/537.36"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl [companies...]",
	Short: "Download STAR-market IPO filings for the given companies",
	Long: `Crawl queries the SSE audit system for each company by name, classifies
its disclosure documents (prospectuses, sponsor letters, audit reports,
legal opinions, inquiry replies, and results) into category directories,
and downloads the PDFs. Existing files are skipped. Companies whose
queries fail are appended to failed_logs.txt for manual follow-up.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	crawlCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")
	crawlCmd.Flags().String("download-dir", defaultInputRoot, "root directory for downloaded filings")
	crawlCmd.Flags().String("companies-file", "", "file of company names (newline or comma separated)")

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	companies := args
	if file, _ := cmd.Flags().GetString("companies-file"); file != "" {
		fromFile, err := crawl.ReadCompaniesFile(file)
		if err != nil {
			return err
		}
		companies = append(companies, fromFile...)
	}
	if len(companies) == 0 {
		return fmt.Errorf("provide one or more company names, or --companies-file")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDelay
	}
	downloadDir := stringSetting(cmd, "download-dir", "crawl.download_dir")

	cfg := types.CrawlConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		DownloadDelay: delay,
		DownloadDir:   downloadDir,
	}

	// The query gateway sets session cookies it expects back.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Jar:     jar,
	}

	client := crawl.NewClient(httpClient, cfg)
	result, err := crawl.CrawlBatch(cmd.Context(), client, companies, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d download(s) and %d company quer(ies) failed",
			result.Failed, len(result.FailedCompanies))
	}
	return nil
}
