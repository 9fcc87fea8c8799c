// Package app wires the bikeshare web service together and manages its
// lifecycle.
//
// NewApplication loads configuration, initializes the logger and
// OpenTelemetry, then calls New which builds the pipeline stages, the
// services on top of them and the Chi router:
//
//	RequestID → RealIP → OTel → StructuredLogger → Recoverer → SecurityHeaders
//
// The analysis and cities routes additionally pass through the rate limiter
// (when enabled) and a per-request deadline. Health probes and /metrics do not.
//
// Run serves until SIGINT or SIGTERM and then shuts the server and the
// telemetry providers down within Server.ShutdownTimeout.
package app
