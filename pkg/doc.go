// Package pkg provides shared utilities for the OHCI host controller core.
//
// This package contains common functionality used across the register,
// schedule, and interrupt layers, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for the error handling design table
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with component context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentSchedule, "batch committed", "address", 1)
//
// # Errors
//
// Core errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrBandwidthExhausted) {
//	    // periodic endpoint rejected
//	}
package pkg
