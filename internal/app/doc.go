// Package app assembles the StreamPulse service: it loads configuration,
// initializes structured logging and OpenTelemetry, builds the analytics
// service layer, and wires the chi router with its middleware chain.
//
// The middleware ordering is RequestID → RealIP → OTel → Logger → Recoverer
// → SecurityHeaders → Compress → CORS → RateLimit, with /metrics mounted
// outside the group so scrapes stay cheap.
package app
