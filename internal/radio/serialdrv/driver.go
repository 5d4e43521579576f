// Package serialdrv implements the radio driver over a serial-attached radio
// modem. Framing, modulation, and retries live in the modem firmware; this
// driver only moves opaque frame bytes across the serial port.
package serialdrv

import (
	"errors"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

const (
	// DefaultBaudRate is used when the configuration does not set one.
	DefaultBaudRate = 115200
	// DefaultTimeout bounds a single port read or write so the control loop
	// never stalls on a silent modem.
	DefaultTimeout = 500 * time.Millisecond
)

// ErrPortClosed is returned when the driver is used before Init or after Close.
var ErrPortClosed = errors.New("serial port is not open")

// Driver drives a radio modem attached to a serial port.
type Driver struct {
	// config holds the serial port parameters used on every (re-)open.
	config serial.Config
	// port is the open serial port, nil while closed.
	port serial.Port
	// mu protects the port across the control loop and shutdown.
	mu sync.Mutex
}

// New creates a closed driver for the given device. Zero baudRate and timeout
// fall back to the defaults.
func New(device string, baudRate int, timeout time.Duration) *Driver {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Driver{
		config: serial.Config{
			Address:  device,
			BaudRate: baudRate,
			DataBits: 8,
			StopBits: 1,
			Parity:   "N",
			Timeout:  timeout,
		},
	}
}

// Init opens the serial port, closing any previously open handle first so a
// re-init always starts from a fresh port.
func (d *Driver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.port != nil {
		_ = d.port.Close()
		d.port = nil
	}

	port, err := serial.Open(&d.config)
	if err != nil {
		return err
	}

	d.port = port

	return nil
}

// Send writes the whole frame to the port.
func (d *Driver) Send(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.port == nil {
		return ErrPortClosed
	}

	for len(data) > 0 {
		n, err := d.port.Write(data)
		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// Receive reads at most len(buf) bytes from the port. A read timeout means no
// frame is pending and is reported as a zero count, not an error.
func (d *Driver) Receive(buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.port == nil {
		return 0, ErrPortClosed
	}

	n, err := d.port.Read(buf)
	if err != nil {
		if errors.Is(err, serial.ErrTimeout) {
			return 0, nil
		}

		return 0, err
	}

	return n, nil
}

// LinkStatus reports whether the port is open. The modem does not expose a
// richer health probe over the serial line.
func (d *Driver) LinkStatus() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.port != nil
}

// Close releases the serial port.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.port == nil {
		return nil
	}

	err := d.port.Close()
	d.port = nil

	return err
}
