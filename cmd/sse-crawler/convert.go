// Copyright q9good, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/q9good/sse-crawler/internal/convert"
	"github.com/q9good/sse-crawler/internal/manifest"
	"github.com/q9good/sse-crawler/pkg/types"
)

const (
	defaultInputRoot  = "Download"
	defaultOutputRoot = "txt"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the downloaded PDF tree into a mirrored text tree",
	Long: `Convert walks the download tree and extracts the text of every PDF into
a parallel .txt file under the output root, preserving the directory
structure. Files whose output already exists are skipped, so interrupted
runs can simply be re-run. Extraction failures are reported and counted
but do not stop the run.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("input", defaultInputRoot, "root of the source PDF tree")
	convertCmd.Flags().String("output", defaultOutputRoot, "root of the mirrored text tree")
	convertCmd.Flags().String("backend", string(types.BackendPDF), "extraction backend: pdf or pdftotext")
	convertCmd.Flags().String("manifest", "", "sqlite conversion manifest path (empty disables recording)")

	rootCmd.AddCommand(convertCmd)
}

// stringSetting resolves a setting from its flag, falling back to the
// config file when the flag was not set explicitly.
func stringSetting(cmd *cobra.Command, flag, viperKey string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) {
		if cfg := viper.GetString(viperKey); cfg != "" {
			return cfg
		}
	}
	return v
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := types.ConvertConfig{
		InputRoot:    stringSetting(cmd, "input", "convert.input_root"),
		OutputRoot:   stringSetting(cmd, "output", "convert.output_root"),
		Backend:      types.ExtractionBackend(stringSetting(cmd, "backend", "convert.backend")),
		ManifestPath: stringSetting(cmd, "manifest", "convert.manifest_path"),
	}

	ext, err := convert.NewExtractor(cfg.Backend)
	if err != nil {
		return err
	}
	if p, ok := ext.(*convert.PdftotextExtractor); ok && !p.Available() {
		return fmt.Errorf("pdftotext binary not found on PATH")
	}

	var rec convert.Recorder
	if cfg.ManifestPath != "" {
		store, err := manifest.Open(cfg.ManifestPath)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	result, err := convert.ConvertTree(cfg, ext, rec, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
