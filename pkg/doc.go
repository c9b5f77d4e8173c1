// Package pkg provides shared utilities for the SHTP core and the packages
// built on top of it.
//
// This package contains common functionality used across the hal, shtp,
// config, metrics, and cmd packages, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error values for synchronous endpoint API failures
//   - Asynchronous protocol event kinds reported by the endpoint
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentEndpoint, "endpoint opened", "channels", 8)
//
// # Errors and events
//
// Synchronous failures are sentinel errors:
//
//	if errors.Is(err, pkg.ErrBadParam) {
//	    // channel out of range or payload too large
//	}
//
// Asynchronous protocol anomalies are reported as an [EventKind] through
// the endpoint's event callback, never as an error return.
package pkg
