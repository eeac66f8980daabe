package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/delulu-meter/internal/app"
	"github.com/markdave123-py/delulu-meter/internal/config"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Settings come from the environment (and a .env file
when present); see PORT, ANALYSIS_MODE, JOB_STORE and friends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if port != "" {
				cfg.Port = port
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			application, err := app.NewApp(ctx, cfg)
			if err != nil {
				return fmt.Errorf("startup: %w", err)
			}
			defer application.Close()

			return application.Run(ctx, cfg.JobWorkers)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")
	return cmd
}
