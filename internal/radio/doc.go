// Package radio implements the bounded-buffer radio transport: a pair of
// fixed-capacity transmit/receive buffers gated behind initialization and
// frame-size checks, plus on-demand link-quality tracking.
//
// The transport owns the buffers for the process lifetime and never allocates
// per call. All physical I/O is delegated to a platform-supplied Driver; the
// transport's job is to make sure no call can ever write past either buffer's
// declared capacity.
package radio
