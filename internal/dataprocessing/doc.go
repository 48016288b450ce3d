// Package dataprocessing loads the live-stream sales exports and maps their
// raw Indonesian column headers onto the engine's canonical schema.
//
// The package owns the ingestion boundary: header discovery and mapping,
// mandatory-column validation (a missing mandatory column rejects the whole
// batch with a SchemaError), blank-row and blank-creator filtering, and the
// per-cell coercion into typed Session fields via the normalize package.
// Past this boundary the rest of the engine only ever sees clean Sessions.
package dataprocessing
