// generate-data regenerates the canonical static dataset from the markdown
// source catalog. The run is all-or-nothing: structural violations (missing
// category headers, duplicate ids or index numbers, schema failures) abort
// before any file is written.
//
// Usage:
//
//	go run ./scripts/generate-data [--source data.md] [--out data]
//	go run ./scripts/generate-data validate [--out data]
//
// An optional generate.yaml next to the working directory can set source and
// out_dir; flags override it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/biostack-io/biostack-engine/pkg/dataset"
	"github.com/biostack-io/biostack-engine/pkg/ingest"
)

// manifest is the optional YAML companion file for the generator.
type manifest struct {
	Source string `yaml:"source"`
	OutDir string `yaml:"out_dir"`
}

var (
	sourcePath   string
	outDir       string
	manifestPath string
	verbose      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "generate-data",
	Short: "Regenerate the static catalog dataset from the markdown source",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewDevelopmentConfig()
		if !verbose {
			config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return applyManifest(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := ingest.NewPipeline(logger).Run(sourcePath, outDir)
		if err != nil {
			return err
		}
		fmt.Printf("Generated data files: %d categories, %d entries, %d compatibility rules.\n",
			summary.Categories, summary.Entries, summary.Rules)
		return nil
	},
}

// validateCmd re-validates existing output files against the schema without
// regenerating them.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-validate the generated data files against the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := dataset.Load(outDir)
		if err != nil {
			return err
		}
		fmt.Printf("Validated data files: %d categories, %d entries, %d compatibility rules.\n",
			len(data.Categories()), len(data.Entries()), len(data.Rules()))
		return nil
	},
}

// applyManifest fills source/out settings from the manifest file for any flag
// the user did not set explicitly. A missing manifest is not an error.
func applyManifest(cmd *cobra.Command) error {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}

	if m.Source != "" && !cmd.Flags().Changed("source") {
		sourcePath = m.Source
	}
	if m.OutDir != "" && !cmd.Flags().Changed("out") {
		outDir = m.OutDir
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&sourcePath, "source", "data.md", "path to the markdown source document")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "data", "output directory for the generated JSON files")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "generate.yaml", "path to the optional generator manifest")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
