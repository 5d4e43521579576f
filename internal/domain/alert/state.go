package alert

// State is the single (level, code) pair the alert manager owns.
// Invariant: Level == LevelInfo if and only if Code == CodeNone.
type State struct {
	// Level is the severity of the current worst unacknowledged fault.
	Level Level
	// Code identifies the fault condition behind Level.
	Code Code
}

// Rest returns the fail-safe default state the system holds at startup and
// after an explicit clear.
func Rest() State {
	return State{
		Level: LevelInfo,
		Code:  CodeNone,
	}
}

// IsRest reports whether the state is the fail-safe default.
func (s State) IsRest() bool {
	return s.Level == LevelInfo && s.Code == CodeNone
}
