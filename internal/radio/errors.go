package radio

import "errors"

var (
	// ErrNoDriver is returned when the transport was built without a driver.
	ErrNoDriver = errors.New("radio driver is not set")
	// ErrNotReady is returned when an operation is attempted before a
	// successful Init.
	ErrNotReady = errors.New("radio transport is not initialized")
	// ErrEmptyFrame is returned when Send is called with no payload.
	ErrEmptyFrame = errors.New("frame is empty")
	// ErrFrameTooLarge is returned when a frame exceeds the transmit buffer
	// capacity.
	ErrFrameTooLarge = errors.New("frame exceeds transmit buffer capacity")
)
