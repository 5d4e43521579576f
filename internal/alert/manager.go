package alert

import (
	"context"
	"sync"

	domain "github.com/oshokin/engine-supervisor/internal/domain/alert"
	"github.com/oshokin/engine-supervisor/internal/logger"
)

// Outputs drives the three physical annunciator lines. Implementations are
// supplied by the platform layer and are assumed non-blocking and non-failing.
type Outputs interface {
	// Info switches the info line.
	Info(on bool)
	// Warning switches the warning line.
	Warning(on bool)
	// Critical switches the critical line.
	Critical(on bool)
}

// TelemetrySink receives every accepted escalation. Delivery is best-effort
// and fire-and-forget: the manager never observes sink failures.
type TelemetrySink interface {
	SendAlert(ctx context.Context, level domain.Level, code domain.Code)
}

// Manager owns the single current alert state. One instance corresponds to
// one physical annunciator set; construct it once and share it with the
// control loop.
type Manager struct {
	// outputs is the annunciator hook, may be nil in headless setups.
	outputs Outputs
	// sink is the telemetry hook, may be nil when telemetry is disabled.
	sink TelemetrySink
	// state is the current worst unacknowledged (level, code) pair.
	state domain.State
	// mu protects concurrent access to the alert state.
	mu sync.RWMutex
}

// NewManager wires the provided hooks into a manager holding the fail-safe
// default state. Call Init to drive the outputs to match.
func NewManager(outputs Outputs, sink TelemetrySink) *Manager {
	return &Manager{
		outputs: outputs,
		sink:    sink,
		state:   domain.Rest(),
	}
}

// Init resets the state to the fail-safe default and unconditionally drives
// the outputs to the info-only configuration. It always succeeds.
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = domain.Rest()
	m.setOutputs(domain.LevelInfo)

	logger.Debug(ctx, "Alert manager initialized")
}

// Raise applies (level, code) as the new current state if level is greater
// than or equal to the held severity. A repeat at the same level with a
// different code is accepted and overwrites the code. On acceptance the
// outputs are re-driven and the telemetry sink is notified; a rejected
// lower-severity alert changes nothing and is dropped silently.
// It reports whether the alert was accepted.
func (m *Manager) Raise(ctx context.Context, level domain.Level, code domain.Code) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if level < m.state.Level {
		logger.DebugKV(ctx, "Alert suppressed by higher active severity",
			"level", level.String(), "code", code.String(), "active_level", m.state.Level.String())

		return false
	}

	m.state = domain.State{
		Level: level,
		Code:  code,
	}

	m.setOutputs(level)

	if m.sink != nil {
		m.sink.SendAlert(ctx, level, code)
	}

	logger.InfoKV(ctx, "Alert raised", "level", level.String(), "code", code.String())

	return true
}

// Clear unconditionally resets the state to the fail-safe default and
// re-drives the info-only outputs. It is the only path that lowers severity.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = domain.Rest()
	m.setOutputs(domain.LevelInfo)

	logger.Info(ctx, "Alert state cleared")
}

// Level returns the current severity.
func (m *Manager) Level() domain.Level {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state.Level
}

// Code returns the current fault code.
func (m *Manager) Code() domain.Code {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state.Code
}

// State returns a copy of the current (level, code) pair.
func (m *Manager) State() domain.State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

// setOutputs deactivates all three lines, then activates exactly the one
// matching level. Clearing first prevents stale multi-line states after a
// level change. Any level that is neither info nor warning drives the
// critical line. Caller must hold mu.
func (m *Manager) setOutputs(level domain.Level) {
	if m.outputs == nil {
		return
	}

	m.outputs.Info(false)
	m.outputs.Warning(false)
	m.outputs.Critical(false)

	switch level {
	case domain.LevelInfo:
		m.outputs.Info(true)
	case domain.LevelWarning:
		m.outputs.Warning(true)
	default:
		m.outputs.Critical(true)
	}
}
