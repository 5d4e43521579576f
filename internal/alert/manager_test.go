package alert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/engine-supervisor/internal/domain/alert"
)

// fakeOutputs records the state of the three annunciator lines and every
// switch operation applied to them.
type fakeOutputs struct {
	// info, warning, critical mirror the current line states.
	info, warning, critical bool
	// writes counts individual line switch operations.
	writes int
}

// Info switches the info line.
func (f *fakeOutputs) Info(on bool) { f.info = on; f.writes++ }

// Warning switches the warning line.
func (f *fakeOutputs) Warning(on bool) { f.warning = on; f.writes++ }

// Critical switches the critical line.
func (f *fakeOutputs) Critical(on bool) { f.critical = on; f.writes++ }

// active returns the number of lines currently on.
func (f *fakeOutputs) active() int {
	count := 0
	for _, on := range []bool{f.info, f.warning, f.critical} {
		if on {
			count++
		}
	}

	return count
}

// sinkCall is a single recorded telemetry notification.
type sinkCall struct {
	level domain.Level
	code  domain.Code
}

// fakeSink records telemetry notifications in order.
type fakeSink struct {
	calls []sinkCall
}

// SendAlert records the notification.
func (f *fakeSink) SendAlert(_ context.Context, level domain.Level, code domain.Code) {
	f.calls = append(f.calls, sinkCall{level: level, code: code})
}

// newTestManager builds an initialized manager with fresh fakes.
func newTestManager(t *testing.T) (*Manager, *fakeOutputs, *fakeSink) {
	t.Helper()

	outputs := new(fakeOutputs)
	sink := new(fakeSink)
	m := NewManager(outputs, sink)
	m.Init(context.Background())

	return m, outputs, sink
}

// TestInit_DrivesFailSafeDefault asserts the rest state and info-only outputs
// after Init, regardless of prior state.
func TestInit_DrivesFailSafeDefault(t *testing.T) {
	t.Parallel()

	m, outputs, _ := newTestManager(t)

	require.Equal(t, domain.Rest(), m.State())
	require.True(t, outputs.info)
	require.Equal(t, 1, outputs.active())

	// Init from an escalated state returns to the same default.
	m.Raise(context.Background(), domain.LevelCritical, domain.CodeEngineFault)
	m.Init(context.Background())

	require.Equal(t, domain.Rest(), m.State())
	require.True(t, outputs.info)
	require.Equal(t, 1, outputs.active())
}

// TestRaise_AcceptsEqualOrHigherSeverity verifies the non-strict escalation
// rule: each accepted raise overwrites the state, drives exactly one matching
// output line, and notifies telemetry once.
func TestRaise_AcceptsEqualOrHigherSeverity(t *testing.T) {
	t.Parallel()

	m, outputs, sink := newTestManager(t)
	ctx := context.Background()

	require.True(t, m.Raise(ctx, domain.LevelWarning, domain.CodeOverTemperature))
	require.Equal(t, domain.State{Level: domain.LevelWarning, Code: domain.CodeOverTemperature}, m.State())
	require.True(t, outputs.warning)
	require.Equal(t, 1, outputs.active())

	// Same level, different code: accepted, code overwritten, telemetry re-sent.
	require.True(t, m.Raise(ctx, domain.LevelWarning, domain.CodeOverPressure))
	require.Equal(t, domain.CodeOverPressure, m.Code())
	require.Equal(t, 1, outputs.active())

	require.True(t, m.Raise(ctx, domain.LevelCritical, domain.CodeEngineFault))
	require.Equal(t, domain.LevelCritical, m.Level())
	require.True(t, outputs.critical)
	require.Equal(t, 1, outputs.active())

	require.Equal(t, []sinkCall{
		{level: domain.LevelWarning, code: domain.CodeOverTemperature},
		{level: domain.LevelWarning, code: domain.CodeOverPressure},
		{level: domain.LevelCritical, code: domain.CodeEngineFault},
	}, sink.calls)
}

// TestRaise_RejectsLowerSeverity verifies a lower-severity alert is a silent
// no-op: no state change, no output writes, no telemetry.
func TestRaise_RejectsLowerSeverity(t *testing.T) {
	t.Parallel()

	m, outputs, sink := newTestManager(t)
	ctx := context.Background()

	require.True(t, m.Raise(ctx, domain.LevelCritical, domain.CodeOverPressure))

	writesBefore := outputs.writes
	sinkCallsBefore := len(sink.calls)

	require.False(t, m.Raise(ctx, domain.LevelWarning, domain.CodeSensorFail))
	require.False(t, m.Raise(ctx, domain.LevelInfo, domain.CodeNone))

	require.Equal(t, domain.State{Level: domain.LevelCritical, Code: domain.CodeOverPressure}, m.State())
	require.Equal(t, writesBefore, outputs.writes)
	require.Len(t, sink.calls, sinkCallsBefore)
}

// TestRaise_SeverityIsMonotonic replays a mixed raise sequence and asserts
// the held severity never decreases between clears.
func TestRaise_SeverityIsMonotonic(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	ctx := context.Background()

	sequence := []struct {
		level domain.Level
		code  domain.Code
	}{
		{domain.LevelInfo, domain.CodeNone},
		{domain.LevelWarning, domain.CodeSensorFail},
		{domain.LevelInfo, domain.CodeNone},
		{domain.LevelCritical, domain.CodeOverTemperature},
		{domain.LevelWarning, domain.CodeEngineFault},
		{domain.LevelCritical, domain.CodeCommunicationLoss},
	}

	previous := m.Level()
	for _, step := range sequence {
		m.Raise(ctx, step.level, step.code)
		require.GreaterOrEqual(t, m.Level(), previous)
		previous = m.Level()
	}
}

// TestClear_IsTheOnlyDeescalationPath runs the reference scenario: a warning
// survives a lower raise and only an explicit clear returns to the default.
func TestClear_IsTheOnlyDeescalationPath(t *testing.T) {
	t.Parallel()

	m, outputs, _ := newTestManager(t)
	ctx := context.Background()

	require.True(t, m.Raise(ctx, domain.LevelWarning, domain.CodeOverTemperature))
	require.False(t, m.Raise(ctx, domain.LevelInfo, domain.CodeNone))
	require.Equal(t, domain.State{Level: domain.LevelWarning, Code: domain.CodeOverTemperature}, m.State())

	m.Clear(ctx)

	require.Equal(t, domain.Rest(), m.State())
	require.True(t, outputs.info)
	require.Equal(t, 1, outputs.active())
}

// TestManager_NilHooks verifies the manager tolerates missing hooks, which
// headless and telemetry-disabled configurations rely on.
func TestManager_NilHooks(t *testing.T) {
	t.Parallel()

	m := NewManager(nil, nil)
	ctx := context.Background()

	m.Init(ctx)
	require.True(t, m.Raise(ctx, domain.LevelCritical, domain.CodeEngineFault))
	require.Equal(t, domain.LevelCritical, m.Level())
	m.Clear(ctx)
	require.Equal(t, domain.Rest(), m.State())
}
