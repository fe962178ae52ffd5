// Package logging provides a minimal logging interface and slog adapters for
// ragmesh. Components depend only on the small Logger interface so any
// structured logger can be plugged in; NoOpLogger keeps tests and minimal
// setups silent without nil checks at call sites.
package logging
