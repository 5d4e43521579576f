// Package alert implements the alert escalation manager: a single worst-active
// (level, code) pair with a monotonic escalation rule and an explicit reset.
//
// A raised alert is accepted only when its severity is greater than or equal
// to the currently held one, so a critical condition can never be masked by a
// later lower-priority report. Only Init or Clear lower the severity. Accepted
// escalations are reflected onto the annunciator outputs and forwarded to the
// telemetry sink.
package alert
