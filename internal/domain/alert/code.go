package alert

// Code identifies the fault condition behind an alert. Codes carry no
// ordering semantics; they are informational payload next to the Level.
type Code uint8

const (
	// CodeNone means no fault is active. It is the only code valid at LevelInfo.
	CodeNone Code = iota
	// CodeSensorFail reports a failed or implausible sensor reading.
	CodeSensorFail
	// CodeOverTemperature reports coolant or oil temperature out of range.
	CodeOverTemperature
	// CodeOverPressure reports pressure out of range.
	CodeOverPressure
	// CodeEngineFault reports a generic engine control fault.
	CodeEngineFault
	// CodeCommunicationLoss reports loss of the radio or bus link.
	CodeCommunicationLoss
)

// String returns a stable snake_case name for the code, used in logs,
// telemetry payloads, and the persisted state snapshot.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeSensorFail:
		return "sensor_fail"
	case CodeOverTemperature:
		return "over_temperature"
	case CodeOverPressure:
		return "over_pressure"
	case CodeEngineFault:
		return "engine_fault"
	case CodeCommunicationLoss:
		return "communication_loss"
	default:
		return "unknown"
	}
}
