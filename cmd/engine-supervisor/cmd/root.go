package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/engine-supervisor/internal/config"
	"github.com/oshokin/engine-supervisor/internal/service/supervisor"
	"github.com/oshokin/engine-supervisor/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// simulate forces the loopback radio and console annunciator.
	simulate bool
	// pollInterval overrides the configured control-loop tick.
	pollInterval time.Duration

	// rootCmd represents the base command for running the supervisor.
	rootCmd = &cobra.Command{
		Use:   "engine-supervisor",
		Short: "Run the engine supervisory loop: alert escalation and radio link watchdog.",
		Long: `Starts the engine supervisor that owns the alert escalation state and the
bounded-buffer radio transport.

The supervisor drives the annunciator lines from the worst unacknowledged
fault, publishes accepted escalations to the telemetry broker, probes radio
link quality every tick, and escalates communication loss when the link
degrades. Radio and annunciator devices come from the configuration file;
--simulate replaces both with in-process stand-ins for development.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &supervisor.Options{
				ConfigPath:   configPath,
				Simulate:     simulate,
				PollInterval: pollInterval,
			}

			return supervisor.Run(ctx, options)
		},
	}
)

// Execute runs the engine-supervisor CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&simulate, "simulate", false, "run with simulated radio and annunciator")
	rootCmd.Flags().
		DurationVarP(&pollInterval, "poll-interval", "p", 0, "control-loop tick override (0 uses configuration)")
}
