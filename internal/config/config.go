package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the engine-supervisor binary.
type Config struct {
	// LogLevel is the minimum logging level (debug, info, warn, error, fatal).
	LogLevel string `yaml:"log_level"`
	// PollInterval is the control-loop tick driving link probes and receives.
	PollInterval time.Duration `yaml:"poll_interval"`
	// StateFile is the path to the JSON file storing the last alert snapshot.
	StateFile string `yaml:"state_file"`
	// Radio configures the serial-attached radio modem.
	Radio RadioConfig `yaml:"radio"`
	// Telemetry configures the MQTT alert sink.
	Telemetry TelemetryConfig `yaml:"telemetry"`
	// Annunciator configures the GPIO lines behind the three indicators.
	Annunciator AnnunciatorConfig `yaml:"annunciator"`
}

// RadioConfig holds the serial port parameters of the radio modem.
// An empty Device selects the in-memory loopback driver (simulate mode).
type RadioConfig struct {
	// Device is the serial device path, e.g. /dev/ttyUSB0.
	Device string `yaml:"device"`
	// BaudRate is the serial line speed.
	BaudRate int `yaml:"baud_rate"`
	// Timeout bounds a single port read or write.
	Timeout time.Duration `yaml:"timeout"`
}

// TelemetryConfig holds the MQTT connection parameters for the alert sink.
// An empty BrokerURL disables telemetry.
type TelemetryConfig struct {
	// BrokerURL is the MQTT broker address, e.g. tcp://broker:1883.
	BrokerURL string `yaml:"broker_url"`
	// Topic is the topic alert events are published to.
	Topic string `yaml:"topic"`
	// ClientID identifies this supervisor to the broker.
	ClientID string `yaml:"client_id"`
}

// AnnunciatorConfig holds the sysfs GPIO pin numbers of the indicator lines.
// All-zero pins select the console annunciator (simulate mode).
type AnnunciatorConfig struct {
	// InfoPin drives the info indicator.
	InfoPin int `yaml:"info_pin"`
	// WarningPin drives the warning indicator.
	WarningPin int `yaml:"warning_pin"`
	// CriticalPin drives the critical indicator.
	CriticalPin int `yaml:"critical_pin"`
}

const (
	// DefaultConfigFilename is the default filename for supervisor settings.
	DefaultConfigFilename = "engine-supervisor-settings.yaml"

	// DefaultStateFilename is the default filename for the alert snapshot JSON.
	DefaultStateFilename = "engine-supervisor-state.json"

	// DefaultPollInterval is the default control-loop tick.
	DefaultPollInterval = time.Second

	// DefaultTelemetryTopic is the default MQTT topic for alert events.
	DefaultTelemetryTopic = "engine/alerts"

	// DefaultTelemetryClientID is the default MQTT client identifier.
	DefaultTelemetryClientID = "engine-supervisor"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeBaudRate is returned when the serial baud rate is negative.
	errNegativeBaudRate = errors.New("radio baud rate must not be negative")
	// errNegativePin is returned when an annunciator pin number is negative.
	errNegativePin = errors.New("annunciator pin numbers must not be negative")
	// errDuplicatePins is returned when two indicator lines share a GPIO pin.
	errDuplicatePins = errors.New("annunciator pins must be distinct")
	// errUnknownLogLevel is returned for an unparseable log level.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and formatting,
// filling in defaults for omitted values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if !isKnownLogLevel(cfg.LogLevel) {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	// Set default poll interval if not specified.
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	// Set default state file if not specified.
	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFilename
	}

	if cfg.Radio.BaudRate < 0 {
		return errNegativeBaudRate
	}

	if err := validateAnnunciator(&cfg.Annunciator); err != nil {
		return err
	}

	return validateTelemetry(&cfg.Telemetry)
}

// validateTelemetry checks the MQTT sink settings and fills defaults.
// Telemetry is optional: an empty broker URL passes validation.
func validateTelemetry(cfg *TelemetryConfig) error {
	if cfg.BrokerURL == "" {
		return nil
	}

	if _, err := url.ParseRequestURI(cfg.BrokerURL); err != nil {
		return fmt.Errorf("invalid telemetry broker URL: %w", err)
	}

	if cfg.Topic == "" {
		cfg.Topic = DefaultTelemetryTopic
	}

	if cfg.ClientID == "" {
		cfg.ClientID = DefaultTelemetryClientID
	}

	return nil
}

// validateAnnunciator checks GPIO pin assignments. All-zero pins mean the
// console annunciator and skip the distinctness check.
func validateAnnunciator(cfg *AnnunciatorConfig) error {
	if cfg.InfoPin < 0 || cfg.WarningPin < 0 || cfg.CriticalPin < 0 {
		return errNegativePin
	}

	if cfg.InfoPin == 0 && cfg.WarningPin == 0 && cfg.CriticalPin == 0 {
		return nil
	}

	if cfg.InfoPin == cfg.WarningPin ||
		cfg.InfoPin == cfg.CriticalPin ||
		cfg.WarningPin == cfg.CriticalPin {
		return errDuplicatePins
	}

	return nil
}

// isKnownLogLevel reports whether s names a supported logging level.
func isKnownLogLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error", "fatal":
		return true
	default:
		return false
	}
}
