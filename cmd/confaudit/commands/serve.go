package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confaudit/confaudit/internal/api"
	"github.com/confaudit/confaudit/internal/config"
	"github.com/confaudit/confaudit/internal/logger"
)

var (
	serveOutput string
	servePort   int
)

// ServeCmd serves a generated report directory over HTTP.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generated report artifacts over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		addr := fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.Port)
		logger.Named("serve").Infow("serving report", "output", serveOutput, "address", addr)

		e := api.NewServer(serveOutput)
		return e.Start(addr)
	},
}

func init() {
	ServeCmd.Flags().StringVarP(&serveOutput, "output", "o", "", "Output directory holding report artifacts (required)")
	ServeCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (default from config)")
	ServeCmd.MarkFlagRequired("output")
}
