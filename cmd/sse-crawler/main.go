// Copyright q9good, 2026. All rights reserved.

// Package main is the entry point for the sse-crawler CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the sse-crawler CLI.
var rootCmd = &cobra.Command{
	Use:   "sse-crawler",
	Short: "Crawl SSE STAR-market IPO filings and convert them to text",
	Long: `sse-crawler maintains a local archive of SSE STAR-market IPO disclosure
documents. The crawl stage queries the exchange's audit system for each
company, downloads its filing PDFs into a per-company directory tree, and
records metadata. The convert stage mirrors that tree into plain-text
files for downstream analysis.

Each stage is a subcommand: crawl, convert, and status.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sse-crawler.yaml or ~/.config/sse-crawler/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sse-crawler")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sse-crawler"))
		}
	}

	viper.SetEnvPrefix("SSE_CRAWLER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
