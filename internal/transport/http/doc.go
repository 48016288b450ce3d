// Package http provides the HTTP handlers for the StreamPulse REST API.
//
// # API Surface
//
// The batch resource is the unit of work: a spreadsheet upload creates one,
// and every analytical read addresses it by ID.
//
//	POST   /api/batches                                upload an xlsx export
//	GET    /api/batches/{id}                           batch metadata
//	GET    /api/batches/{id}/sessions                  scored sessions (filterable)
//	GET    /api/batches/{id}/creators                  creator aggregates with clusters
//	GET    /api/batches/{id}/insights                  narrative insights
//	GET    /api/batches/{id}/prediction                OLS revenue fit (filterable)
//	GET    /api/batches/{id}/summary                   KPI summary and leaderboard
//	GET    /api/batches/{id}/export/sessions.csv       session table download
//	GET    /api/batches/{id}/export/report.csv         leaderboard download
//	GET    /api/batches/{id}/export/report.xlsx        workbook download
//	DELETE /api/batches/{id}                           drop a batch early
//
// # Filters
//
// Session-level endpoints accept query parameters: creators and clusters
// (comma separated), min_score and max_score (0-100), from and to
// (RFC 3339 or YYYY-MM-DD).
//
// # Errors
//
// All failures render a structured APIError body. A missing or expired
// batch is 404 BATCH_NOT_FOUND; a spreadsheet missing mandatory columns is
// 422 SCHEMA_INVALID with the missing column names in the details.
package http
