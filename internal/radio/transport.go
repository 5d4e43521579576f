package radio

import (
	"context"
	"sync"

	"github.com/oshokin/engine-supervisor/internal/logger"
)

const (
	// TxBufferSize is the fixed capacity of the transmit buffer in bytes.
	TxBufferSize = 128
	// RxBufferSize is the fixed capacity of the receive buffer in bytes.
	RxBufferSize = 128
)

// Driver is the hardware hook contract the transport delegates physical I/O
// to. Implementations handle modulation, framing, and retries at the PHY
// level; the transport treats frame contents as opaque bytes.
type Driver interface {
	// Init brings the physical radio up and reports readiness.
	Init() error
	// Send attempts physical transmission of exactly len(data) bytes.
	Send(data []byte) error
	// Receive writes at most len(buf) bytes into buf and returns the actual
	// count. Implementations must bound their own writes to len(buf).
	Receive(buf []byte) (int, error)
	// LinkStatus is a synchronous link-quality probe.
	LinkStatus() bool
	// Close releases the underlying device.
	Close() error
}

// Transport gates all radio I/O behind initialization and size checks.
// One instance corresponds to one physical radio link; construct it once and
// share it with the control loop. Buffers are allocated with the transport
// and reused for its whole lifetime.
type Transport struct {
	// driver is the platform-supplied hardware hook.
	driver Driver
	// initialized reports whether the last Init succeeded.
	initialized bool
	// linkOK is the link quality seen by the last probe, false after Init.
	linkOK bool
	// txBuffer holds the outgoing frame, overwritten in place on every Send.
	txBuffer [TxBufferSize]byte
	// rxBuffer holds the last received frame, overwritten on every Receive.
	rxBuffer [RxBufferSize]byte
	// mu protects all transport state including the buffers.
	mu sync.Mutex
}

// NewTransport wires the provided driver into an uninitialized transport.
// Call Init before any I/O.
func NewTransport(driver Driver) *Transport {
	return &Transport{
		driver: driver,
	}
}

// Init zeroes both buffers, runs the driver initialization, and records its
// outcome as the transport's readiness. Link quality is reset to false
// unconditionally and must be re-queried via LinkStatus, never assumed.
// Re-calling Init is the only reconnect path.
func (t *Transport) Init(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.txBuffer = [TxBufferSize]byte{}
	t.rxBuffer = [RxBufferSize]byte{}
	t.linkOK = false

	if t.driver == nil {
		t.initialized = false

		return ErrNoDriver
	}

	err := t.driver.Init()
	t.initialized = err == nil

	if err != nil {
		logger.ErrorKV(ctx, "Radio initialization failed", "error", err)

		return err
	}

	logger.Debug(ctx, "Radio transport initialized")

	return nil
}

// IsReady reports whether the last Init succeeded.
func (t *Transport) IsReady() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.initialized
}

// LinkStatus re-queries the driver for current link quality, stores and
// returns it. This is a refresh-and-read operation, not a pure getter; every
// call may change the stored value.
func (t *Transport) LinkStatus() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.driver == nil {
		t.linkOK = false

		return false
	}

	t.linkOK = t.driver.LinkStatus()

	return t.linkOK
}

// Send validates the frame, copies it into the transmit buffer, and delegates
// to the driver. It fails with ErrNotReady before a successful Init, with
// ErrEmptyFrame for zero-length input, and with ErrFrameTooLarge when the
// frame exceeds TxBufferSize; no state is touched on any of these. Driver
// errors are propagated verbatim, never retried. The transmit buffer is
// overwritten in place on every call.
func (t *Transport) Send(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return ErrNotReady
	}

	if len(data) == 0 {
		return ErrEmptyFrame
	}

	if len(data) > TxBufferSize {
		return ErrFrameTooLarge
	}

	n := copy(t.txBuffer[:], data)

	return t.driver.Send(t.txBuffer[:n])
}

// Receive delegates to the driver with the fixed receive buffer capacity as
// the upper bound and returns the received byte count. It fails with
// ErrNotReady before a successful Init. On driver failure the count is zero.
// The receive buffer is overwritten on every call.
func (t *Transport) Receive() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return 0, ErrNotReady
	}

	n, err := t.driver.Receive(t.rxBuffer[:])
	if err != nil {
		return 0, err
	}

	return n, nil
}

// RxBuffer returns a view over the fixed-size receive buffer. The view
// aliases the transport's backing storage: its contents are meaningful only
// up to the length last returned by Receive and are overwritten by the next
// Receive call. Callers must treat it as read-only and must not retain it
// across calls.
func (t *Transport) RxBuffer() []byte {
	return t.rxBuffer[:]
}
