package alert

import "strings"

// Level is the severity of an alert. Levels are totally ordered:
// LevelInfo < LevelWarning < LevelCritical. The ordering is the basis of the
// manager's escalation rule, so the numeric values are part of the contract.
type Level uint8

const (
	// LevelInfo is the rest severity: no fault condition is active.
	LevelInfo Level = iota
	// LevelWarning indicates a degraded but operable condition.
	LevelWarning
	// LevelCritical indicates a condition that requires immediate attention.
	LevelCritical
)

// String returns the lowercase name of the level for logs and telemetry.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseLevel converts string input to a severity level.
// The second return value reports whether the input was recognized.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo, true
	case "warning":
		return LevelWarning, true
	case "critical":
		return LevelCritical, true
	default:
		return LevelInfo, false
	}
}
