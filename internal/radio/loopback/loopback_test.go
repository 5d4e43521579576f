package loopback

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDriver_EchoesFramesInOrder verifies FIFO echo semantics and bounded
// copies into small receive buffers.
func TestDriver_EchoesFramesInOrder(t *testing.T) {
	t.Parallel()

	d := New()
	require.NoError(t, d.Init())

	require.NoError(t, d.Send([]byte("first")))
	require.NoError(t, d.Send([]byte("second")))
	require.Equal(t, 2, d.Pending())

	buf := make([]byte, 16)

	n, err := d.Receive(buf)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), buf[:n])

	// A short buffer bounds the copy instead of overflowing.
	short := make([]byte, 3)
	n, err = d.Receive(short)
	require.NoError(t, err)
	require.Equal(t, []byte("sec"), short[:n])

	// Empty queue yields a zero count, not an error.
	n, err = d.Receive(buf)
	require.NoError(t, err)
	require.Zero(t, n)
}

// TestDriver_LifecycleAndLink verifies closed-state rejections and the
// simulated link override.
func TestDriver_LifecycleAndLink(t *testing.T) {
	t.Parallel()

	d := New()

	require.ErrorIs(t, d.Send([]byte{0x01}), ErrClosed)

	_, err := d.Receive(make([]byte, 1))
	require.ErrorIs(t, err, ErrClosed)
	require.False(t, d.LinkStatus())

	require.NoError(t, d.Init())
	require.True(t, d.LinkStatus())

	d.SetLink(false)
	require.False(t, d.LinkStatus())

	require.NoError(t, d.Send([]byte{0x01}))
	require.NoError(t, d.Close())
	require.Zero(t, d.Pending())
	require.ErrorIs(t, d.Send([]byte{0x01}), ErrClosed)
}
