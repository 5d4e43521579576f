// Package mqtt implements the telemetry sink hook over MQTT. Accepted alert
// escalations are published as JSON events, fire-and-forget at QoS 0: the
// alert manager never observes delivery failures.
package mqtt
