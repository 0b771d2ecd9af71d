package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info (set during build via -ldflags).
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("confaudit %s (built %s)\n", Version, BuildTime)
	},
}
