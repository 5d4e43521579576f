package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty config gets defaults.
	cfg := new(Config)

	require.NoError(t, Validate(cfg))
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, DefaultPollInterval, cfg.PollInterval)
	require.Equal(t, DefaultStateFilename, cfg.StateFile)

	// Unknown log level.
	cfg = &Config{LogLevel: "loud"}
	require.Error(t, Validate(cfg))

	// Negative baud rate.
	cfg = &Config{Radio: RadioConfig{BaudRate: -1}}
	require.Error(t, Validate(cfg))

	// Bad broker URL.
	cfg = &Config{Telemetry: TelemetryConfig{BrokerURL: "not a url"}}
	require.Error(t, Validate(cfg))

	// Telemetry defaults are filled when a broker is configured.
	cfg = &Config{Telemetry: TelemetryConfig{BrokerURL: "tcp://broker.local:1883"}}
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultTelemetryTopic, cfg.Telemetry.Topic)
	require.Equal(t, DefaultTelemetryClientID, cfg.Telemetry.ClientID)

	// Duplicate GPIO pins.
	cfg = &Config{
		Annunciator: AnnunciatorConfig{
			InfoPin:     17,
			WarningPin:  17,
			CriticalPin: 22,
		},
	}
	require.Error(t, Validate(cfg))

	// Distinct pins pass.
	cfg = &Config{
		Annunciator: AnnunciatorConfig{
			InfoPin:     17,
			WarningPin:  27,
			CriticalPin: 22,
		},
	}
	require.NoError(t, Validate(cfg))

	// Nil config is rejected.
	require.Error(t, Validate(nil))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		LogLevel:     "debug",
		PollInterval: 250 * time.Millisecond,
		Radio: RadioConfig{
			Device:   "/dev/ttyUSB0",
			BaudRate: 57600,
			Timeout:  time.Second,
		},
		Telemetry: TelemetryConfig{
			BrokerURL: "tcp://broker.local:1883",
			Topic:     "vehicle/engine/alerts",
			ClientID:  "supervisor-1",
		},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.LogLevel, loaded.LogLevel)
	require.Equal(t, cfg.PollInterval, loaded.PollInterval)
	require.Equal(t, cfg.Radio, loaded.Radio)
	require.Equal(t, cfg.Telemetry, loaded.Telemetry)
}

// TestLoad_MissingFile verifies a clear error when the settings file is absent.
func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
