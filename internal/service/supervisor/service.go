package supervisor

import (
	"context"
	"time"

	"github.com/oshokin/engine-supervisor/internal/alert"
	domain "github.com/oshokin/engine-supervisor/internal/domain/alert"
	"github.com/oshokin/engine-supervisor/internal/logger"
	"github.com/oshokin/engine-supervisor/internal/radio"
	repo "github.com/oshokin/engine-supervisor/internal/repository/state"
)

// receiveBurstLimit bounds how many frames a single tick drains so one busy
// link cannot starve the rest of the loop.
const receiveBurstLimit = 8

// keepalive is the frame sent every tick to keep the link warm. Contents are
// opaque to the transport; the modem firmware recognizes the marker.
var keepalive = []byte("SUP-KEEPALIVE")

// service binds the alert manager, the radio transport, and the snapshot
// repository into one pollable unit.
type service struct {
	// manager holds the current worst alert.
	manager *alert.Manager
	// transport owns the radio buffers and link state.
	transport *radio.Transport
	// repo persists the last accepted alert, may be nil.
	repo repo.Repository
	// now supplies timestamps, replaceable in tests.
	now func() time.Time
}

// newService wires the provided components. A nil repository disables
// snapshot persistence.
func newService(manager *alert.Manager, transport *radio.Transport, repository repo.Repository) *service {
	return &service{
		manager:   manager,
		transport: transport,
		repo:      repository,
		now:       time.Now,
	}
}

// tick runs one control-loop iteration: recover transport readiness, probe
// the link, send a keepalive, and drain pending frames. Every step degrades
// to "no change, log, continue" on failure.
func (s *service) tick(ctx context.Context) {
	if !s.transport.IsReady() {
		// Re-calling Init is the only reconnect path the transport has.
		if err := s.transport.Init(ctx); err != nil {
			logger.WarnKV(ctx, "Radio re-initialization failed", "error", err)
			s.raise(ctx, domain.LevelWarning, domain.CodeCommunicationLoss)

			return
		}
	}

	if !s.transport.LinkStatus() {
		s.raise(ctx, domain.LevelWarning, domain.CodeCommunicationLoss)
	}

	if err := s.transport.Send(keepalive); err != nil {
		logger.DebugKV(ctx, "Keepalive send failed", "error", err)
	}

	s.drainReceived(ctx)
}

// drainReceived pulls pending frames off the link, bounded per tick.
func (s *service) drainReceived(ctx context.Context) {
	for i := 0; i < receiveBurstLimit; i++ {
		n, err := s.transport.Receive()
		if err != nil {
			logger.DebugKV(ctx, "Radio receive failed", "error", err)

			return
		}

		if n == 0 {
			return
		}

		logger.DebugKV(ctx, "Radio frame received", "length", n)
	}
}

// raise escalates through the manager and, when the escalation is accepted,
// persists it as the latest snapshot. Persistence failures are logged and
// dropped: the snapshot never gates the alert path.
func (s *service) raise(ctx context.Context, level domain.Level, code domain.Code) {
	if !s.manager.Raise(ctx, level, code) {
		return
	}

	if s.repo == nil {
		return
	}

	snapshot := repo.NewSnapshot(s.manager.State(), s.now())
	if err := s.repo.Save(ctx, snapshot); err != nil {
		logger.WarnKV(ctx, "Failed to persist alert snapshot", "error", err)
	}
}
