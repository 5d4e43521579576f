// Package alert defines the domain model of the alert subsystem: ordered
// severity levels, fault codes, and the single (level, code) state pair the
// manager owns.
package alert
