package supervisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/engine-supervisor/internal/alert"
	"github.com/oshokin/engine-supervisor/internal/annunciator"
	"github.com/oshokin/engine-supervisor/internal/config"
	domain "github.com/oshokin/engine-supervisor/internal/domain/alert"
	"github.com/oshokin/engine-supervisor/internal/logger"
	"github.com/oshokin/engine-supervisor/internal/radio"
	"github.com/oshokin/engine-supervisor/internal/radio/loopback"
	"github.com/oshokin/engine-supervisor/internal/radio/serialdrv"
	repository "github.com/oshokin/engine-supervisor/internal/repository/state"
	"github.com/oshokin/engine-supervisor/internal/telemetry/mqtt"
)

// Options controls the supervisor process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Simulate forces the loopback radio and console annunciator regardless
	// of configured devices, for development without hardware.
	Simulate bool
	// PollInterval overrides the configured control-loop tick when positive.
	PollInterval time.Duration
}

// Run wires the platform hooks, initializes both subsystems, and drives the
// control loop until the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "engine-supervisor")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	pollInterval := cfg.PollInterval
	if opts.PollInterval > 0 {
		pollInterval = opts.PollInterval
	}

	// Telemetry sink is optional; nil disables it.
	sink, closeSink, err := buildSink(ctx, cfg, opts.Simulate)
	if err != nil {
		return fmt.Errorf("connect telemetry: %w", err)
	}
	defer closeSink()

	manager := alert.NewManager(buildOutputs(ctx, cfg, opts.Simulate), sink)
	manager.Init(ctx)

	driver := buildDriver(cfg, opts.Simulate)
	defer func() {
		_ = driver.Close()
	}()

	transport := radio.NewTransport(driver)
	if err := transport.Init(ctx); err != nil {
		// Fail-safe: run degraded and let the loop retry initialization.
		logger.ErrorKV(ctx, "Radio unavailable at startup", "error", err)
		manager.Raise(ctx, domain.LevelWarning, domain.CodeCommunicationLoss)
	}

	repo := repository.NewFileRepository(cfg.StateFile)
	reportLastSnapshot(ctx, repo)

	svc := newService(manager, transport, repo)

	logger.InfoKV(ctx, "Supervisor running",
		"poll_interval", pollInterval.String(),
		"simulate", opts.Simulate,
		"radio_device", cfg.Radio.Device,
		"state_file", cfg.StateFile)

	// Setup polling ticker with fixed interval.
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	// Main control loop until context cancellation.
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			manager.Clear(ctx)

			return nil
		case <-ticker.C:
			svc.tick(ctx)
		}
	}
}

// buildOutputs picks the annunciator implementation: GPIO pins when
// configured, console otherwise or in simulate mode.
func buildOutputs(ctx context.Context, cfg *config.Config, simulate bool) alert.Outputs {
	pins := cfg.Annunciator
	if simulate || (pins.InfoPin == 0 && pins.WarningPin == 0 && pins.CriticalPin == 0) {
		return annunciator.NewConsole(ctx)
	}

	return annunciator.NewGPIO(pins)
}

// buildSink connects the MQTT sink when a broker is configured. The returned
// closer is always safe to call.
func buildSink(ctx context.Context, cfg *config.Config, simulate bool) (alert.TelemetrySink, func(), error) {
	if simulate || cfg.Telemetry.BrokerURL == "" {
		logger.Debug(ctx, "Telemetry disabled")

		return nil, func() {}, nil
	}

	sink, err := mqtt.NewSink(cfg.Telemetry.BrokerURL, cfg.Telemetry.ClientID, cfg.Telemetry.Topic)
	if err != nil {
		return nil, func() {}, err
	}

	return sink, sink.Close, nil
}

// buildDriver picks the radio driver: the serial modem when a device is
// configured, the in-memory loopback otherwise or in simulate mode.
func buildDriver(cfg *config.Config, simulate bool) radio.Driver {
	if simulate || cfg.Radio.Device == "" {
		return loopback.New()
	}

	return serialdrv.New(cfg.Radio.Device, cfg.Radio.BaudRate, cfg.Radio.Timeout)
}

// reportLastSnapshot logs the alert persisted by the previous run, if any.
func reportLastSnapshot(ctx context.Context, repo repository.Repository) {
	snapshot, err := repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.WarnKV(ctx, "Failed to read alert snapshot", "error", err)
		}

		return
	}

	logger.InfoKV(ctx, "Last persisted alert",
		"level", snapshot.Level, "code", snapshot.Code, "raised_at", snapshot.RaisedAt)
}
