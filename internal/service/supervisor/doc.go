// Package supervisor runs the engine-supervisor control loop: it wires the
// platform hooks into the alert manager and radio transport, then drives both
// from a single polled loop — probing link quality, sending keepalives,
// draining received frames, and escalating communication loss.
package supervisor
