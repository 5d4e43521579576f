// Package state persists the last accepted alert as a JSON snapshot so
// operators can inspect the most recent fault after a supervisor restart.
// Persistence is best-effort and never influences the alert manager itself.
package state
