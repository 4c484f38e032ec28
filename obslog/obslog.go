// Package obslog is a thin wrapper around cdr.dev/slog, giving the
// command-line tool a single, structured place to report the §7 error
// kinds that are logged
// rather than returned as errors: unreachable hubs, no-path routing
// failures, and ILP solver fallbacks.
package obslog

import (
	"context"
	"os"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
)

// Logger is the structured logger used by the command-line tool.
type Logger struct {
	l slog.Logger
}

// New returns a Logger writing human-readable structured output to
// stderr.
func New() Logger {
	return Logger{l: slog.Make(sloghuman.Sink(os.Stderr))}
}

// UnreachableHub logs error kind 1: no candidate hub within the
// widening search radius for a combination edge endpoint.
func (lg Logger) UnreachableHub(ctx context.Context, edgeID int, which string) {
	lg.l.Warn(ctx, "no candidate hub within search radius",
		slog.F("edge", edgeID), slog.F("endpoint", which))
}

// NoPath logs error kind 2: the router found no path between the
// resolved source and target candidate sets.
func (lg Logger) NoPath(ctx context.Context, edgeID int) {
	lg.l.Warn(ctx, "router returned no path", slog.F("edge", edgeID))
}

// ILPFallback logs error kind 5: the ILP solver preference chain was
// exhausted without a feasible solution, and the component's input
// ordering was left unchanged.
func (lg Logger) ILPFallback(ctx context.Context, component int, reason string) {
	lg.l.Warn(ctx, "ilp solver unavailable, falling back to input ordering",
		slog.F("component", component), slog.F("reason", reason))
}

// InvariantViolation logs error kinds 3/4: a fatal assertion breach
// (cost-vector reversibility or real-edge residency symmetry). Callers
// still panic after logging — these are programming errors, not
// recoverable runtime conditions.
func (lg Logger) InvariantViolation(ctx context.Context, what string, details ...slog.Field) {
	lg.l.Critical(ctx, "invariant violation: "+what, details...)
}

// Sync flushes any buffered log output.
func (lg Logger) Sync() error {
	return lg.l.Sync()
}
