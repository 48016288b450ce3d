// Package services implements the business logic layer of the StreamPulse
// application. It provides a clean separation between HTTP handlers and the
// analytics engine, ensuring that business rules stay centralized and
// testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Domain-focused methods that encapsulate business rules
//
// # Batch Lifecycle
//
// An uploaded spreadsheet becomes an immutable analyzed batch: the parser
// extracts sessions, the engine scores and clusters them once, and the
// result is cached in the BatchStore under a UUID until its TTL expires.
// Every read endpoint serves from that cached result; filters are applied
// per request without mutating the stored batch.
package services
