// Package commands holds the confaudit subcommands.
package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/confaudit/confaudit/internal/config"
	"github.com/confaudit/confaudit/internal/pipeline"
	"github.com/confaudit/confaudit/internal/schema"
)

var (
	runInput  string
	runOutput string
	runSchema string
)

// RunCmd executes the validate-aggregate-report pipeline once.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Validate documents and write the report artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if runSchema != "" {
			cfg.Schema.Path = runSchema
		}

		s := schema.Default()
		if cfg.Schema.Path != "" {
			if s, err = schema.Load(cfg.Schema.Path); err != nil {
				return err
			}
		}

		result, err := pipeline.Run(cmd.Context(), pipeline.Options{
			InputDir:  runInput,
			OutputDir: runOutput,
			Schema:    s,
			Config:    cfg,
		})
		if err != nil {
			return err
		}

		// Artifacts are written either way; failed files only decide the
		// exit status.
		if n := result.Stats.FilesFailed; n > 0 {
			return errors.Newf("validation/parse errors in %d file(s), see %s", n, result.SummaryPath)
		}
		return nil
	},
}

func init() {
	RunCmd.Flags().StringVarP(&runInput, "input", "i", "", "Input directory with YAML documents (required)")
	RunCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Output directory for report artifacts (required)")
	RunCmd.Flags().StringVar(&runSchema, "schema", "", "Schema YAML file (default: built-in schema)")
	RunCmd.MarkFlagRequired("input")
	RunCmd.MarkFlagRequired("output")
}
