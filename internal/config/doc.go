// Package config defines the supervisor settings and provides helpers to
// load, validate and save them in YAML format.
//
// The Config type holds logging, control-loop, radio link, telemetry, and
// annunciator parameters consumed by the engine-supervisor binary.
package config
