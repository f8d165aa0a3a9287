// Copyright q9good, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/q9good/sse-crawler/internal/manifest"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report conversion outcomes recorded in the manifest",
	Long: `Status summarizes the conversion manifest: how many sources were
converted, skipped, or failed on their last recorded run, and which
failed so they can be retried or inspected.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().String("manifest", "", "sqlite conversion manifest path")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	path := stringSetting(cmd, "manifest", "convert.manifest_path")
	if path == "" {
		return fmt.Errorf("provide --manifest or set convert.manifest_path in the config file")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("manifest %s not found; run convert with --manifest first", path)
	}

	store, err := manifest.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Summarize()
	if err != nil {
		return err
	}
	fmt.Printf("converted: %d\nskipped:   %d\nfailed:    %d\ntotal:     %d\n",
		summary.Converted, summary.Skipped, summary.Failed, summary.Total())

	if summary.Failed > 0 {
		failures, err := store.Failures()
		if err != nil {
			return err
		}
		fmt.Println("\nFailed sources:")
		for _, f := range failures {
			fmt.Printf("  %s (last attempt %s)\n", f.SourcePath, f.CompletedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}
