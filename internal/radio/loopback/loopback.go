// Package loopback provides a deterministic in-memory radio driver.
// Sent frames are queued and handed back by Receive, which makes simulate
// mode and tests self-contained without any radio hardware.
package loopback

import (
	"errors"
	"sync"
)

// ErrClosed is returned when the driver is used before Init or after Close.
var ErrClosed = errors.New("loopback driver is closed")

// Driver echoes transmitted frames back through Receive in FIFO order.
type Driver struct {
	// ready reports whether Init has been called.
	ready bool
	// link is the simulated link quality, true after Init.
	link bool
	// queue holds frames waiting to be received, oldest first.
	queue [][]byte
	// mu protects all driver state.
	mu sync.Mutex
}

// New creates a closed loopback driver.
func New() *Driver {
	return new(Driver)
}

// Init opens the driver with a healthy simulated link.
func (d *Driver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ready = true
	d.link = true
	d.queue = nil

	return nil
}

// Send queues a copy of the frame for a later Receive.
func (d *Driver) Send(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return ErrClosed
	}

	d.queue = append(d.queue, append([]byte(nil), data...))

	return nil
}

// Receive pops the oldest queued frame into buf, bounded by its length.
// It returns a zero count when no frame is pending.
func (d *Driver) Receive(buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return 0, ErrClosed
	}

	if len(d.queue) == 0 {
		return 0, nil
	}

	frame := d.queue[0]
	d.queue = d.queue[1:]

	return copy(buf, frame), nil
}

// LinkStatus reports the simulated link quality.
func (d *Driver) LinkStatus() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.ready && d.link
}

// SetLink overrides the simulated link quality, letting tests and simulations
// exercise link degradation.
func (d *Driver) SetLink(ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.link = ok
}

// Pending returns the number of frames waiting to be received.
func (d *Driver) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.queue)
}

// Close drops all queued frames and marks the driver closed.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ready = false
	d.link = false
	d.queue = nil

	return nil
}
