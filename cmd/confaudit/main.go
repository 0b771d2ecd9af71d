package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/confaudit/confaudit/cmd/confaudit/commands"
	"github.com/confaudit/confaudit/internal/logger"
)

var (
	jsonLogs bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "confaudit",
	Short: "confaudit - validate YAML documents and report on them",
	Long: `confaudit validates a directory of YAML documents against a schema,
aggregates their numeric fields, and writes a CSV table, a JSON summary,
and charts. Built for CI: the run exits non-zero when any document is
malformed, while still writing artifacts for whatever succeeded.

Examples:
  confaudit run --input ./configs --output ./reports
  confaudit run -i ./configs -o ./reports --schema ./schema.yaml
  confaudit serve --output ./reports --port 8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonLogs, verbose); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log per-file processing detail")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
