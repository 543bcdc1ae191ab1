// Package observability provides structured logging, metrics, and
// tracing for chronatrix context builds and condition evaluations.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds build context to a logger.
// Returns a new logger with build_id and stage fields.
func EnrichLogger(logger *slog.Logger, buildID, stage string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("build_id", buildID),
		slog.String("stage", stage),
	)
}

// LogBuildStart logs the start of a context build.
func LogBuildStart(logger *slog.Logger, buildID, placeName string) {
	if logger == nil {
		return
	}
	logger.Debug("context build starting",
		slog.String("build_id", buildID),
		slog.String("place", placeName),
	)
}

// LogBuildComplete logs successful context build completion.
func LogBuildComplete(logger *slog.Logger, buildID string, durationMs float64, keyCount int) {
	if logger == nil {
		return
	}
	logger.Debug("context build completed",
		slog.String("build_id", buildID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("keys", keyCount),
	)
}

// LogStageDegraded logs a provider failure that degraded one stage to
// its unknown defaults (non-fatal).
func LogStageDegraded(logger *slog.Logger, buildID, stage string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("stage degraded to defaults",
		slog.String("build_id", buildID),
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)
}

// LogConditionRejected logs a condition that failed to parse.
func LogConditionRejected(logger *slog.Logger, condition string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("condition rejected",
		slog.String("condition", condition),
		slog.String("error", err.Error()),
	)
}

// LogConditionEvaluated logs a condition evaluation outcome.
func LogConditionEvaluated(logger *slog.Logger, condition string, result bool) {
	if logger == nil {
		return
	}
	logger.Debug("condition evaluated",
		slog.String("condition", condition),
		slog.Bool("result", result),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
