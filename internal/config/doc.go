// Package config provides centralized configuration management for the
// StreamPulse service. It handles loading configuration from multiple
// sources, validation, and a type-safe API for the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (config.yaml or configs/config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern STREAMPULSE_* for namespacing:
//
//	STREAMPULSE_SERVER_PORT=8080
//	STREAMPULSE_LOGGING_LEVEL=info
//	STREAMPULSE_UPLOAD_MAX_FILE_BYTES=20971520
//	STREAMPULSE_ANALYTICS_MAX_CLUSTERS=4
//
// # Analytics Overrides
//
// The analytics section tunes the scoring and clustering engine. Fields left
// at their zero value keep the engine defaults, so a YAML file can override
// just the cluster labels without restating the scoring weights:
//
//	analytics:
//	  cluster_labels: ["Tier A", "Tier B", "Tier C", "Tier D"]
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine := analytics.NewEngine(cfg.EngineParams(), logger)
package config
