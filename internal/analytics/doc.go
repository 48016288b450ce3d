// Package analytics implements the creator performance engine: per-session
// derived metrics, the weighted 0-100 performance score, behavioral
// clustering of creators, rule-based insight generation, and the on-demand
// revenue model.
//
// The engine is a pure function of its input batch. Every stage runs to
// completion in memory, degraded inputs fall back to neutral defaults
// (score 50, nil cluster, skipped insight) instead of failing the batch,
// and nothing is retained between runs.
package analytics
