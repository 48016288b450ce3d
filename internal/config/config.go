package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"streampulse/internal/analytics"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Upload    UploadConfig    `yaml:"upload" envconfig:"UPLOAD"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ExportsDir string `yaml:"exports_dir" envconfig:"EXPORTS_DIR" default:"exports"`
	CostFile   string `yaml:"cost_file" envconfig:"COST_FILE" default:"data/product_costs.json"`
}

// UploadConfig bounds spreadsheet uploads and batch retention
type UploadConfig struct {
	MaxFileBytes int64         `yaml:"max_file_bytes" envconfig:"MAX_FILE_BYTES" default:"20971520"`
	BatchTTL     time.Duration `yaml:"batch_ttl" envconfig:"BATCH_TTL" default:"1h"`
	MaxBatches   int           `yaml:"max_batches" envconfig:"MAX_BATCHES" default:"64"`
}

// AnalyticsConfig tunes the scoring and clustering engine. Zero values fall
// back to the engine defaults so a partial YAML override stays valid.
type AnalyticsConfig struct {
	ScoringWeights    []float64 `yaml:"scoring_weights" envconfig:"SCORING_WEIGHTS"`
	ClusterLabels     []string  `yaml:"cluster_labels" envconfig:"CLUSTER_LABELS"`
	MaxClusters       int       `yaml:"max_clusters" envconfig:"MAX_CLUSTERS"`
	Seed              int64     `yaml:"seed" envconfig:"SEED"`
	Restarts          int       `yaml:"restarts" envconfig:"RESTARTS"`
	MinPredictionRows int       `yaml:"min_prediction_rows" envconfig:"MIN_PREDICTION_ROWS"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("STREAMPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Paths.DataDir == "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if envConfig.Paths.ExportsDir == "" {
		envConfig.Paths.ExportsDir = fileConfig.Paths.ExportsDir
	}
	if envConfig.Paths.CostFile == "" {
		envConfig.Paths.CostFile = fileConfig.Paths.CostFile
	}
	if len(envConfig.Analytics.ScoringWeights) == 0 {
		envConfig.Analytics.ScoringWeights = fileConfig.Analytics.ScoringWeights
	}
	if len(envConfig.Analytics.ClusterLabels) == 0 {
		envConfig.Analytics.ClusterLabels = fileConfig.Analytics.ClusterLabels
	}
	if envConfig.Analytics.MaxClusters == 0 {
		envConfig.Analytics.MaxClusters = fileConfig.Analytics.MaxClusters
	}
	if envConfig.Analytics.Seed == 0 {
		envConfig.Analytics.Seed = fileConfig.Analytics.Seed
	}
	if envConfig.Analytics.Restarts == 0 {
		envConfig.Analytics.Restarts = fileConfig.Analytics.Restarts
	}
	if envConfig.Analytics.MinPredictionRows == 0 {
		envConfig.Analytics.MinPredictionRows = fileConfig.Analytics.MinPredictionRows
	}

	return envConfig
}

// EngineParams maps the analytics overrides onto the engine defaults.
func (c *Config) EngineParams() analytics.Params {
	p := analytics.DefaultParams()
	a := c.Analytics
	if len(a.ScoringWeights) > 0 {
		p.ScoringWeights = a.ScoringWeights
	}
	if len(a.ClusterLabels) > 0 {
		p.ClusterLabels = a.ClusterLabels
	}
	if a.MaxClusters > 0 {
		p.MaxClusters = a.MaxClusters
	}
	if a.Seed != 0 {
		p.Seed = a.Seed
	}
	if a.Restarts > 0 {
		p.Restarts = a.Restarts
	}
	if a.MinPredictionRows > 0 {
		p.MinPredictionRows = a.MinPredictionRows
	}
	return p
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Upload.MaxFileBytes <= 0 {
		return fmt.Errorf("upload max file size must be positive")
	}

	if len(c.Analytics.ScoringWeights) > 0 {
		for i, w := range c.Analytics.ScoringWeights {
			if w < 0 {
				return fmt.Errorf("scoring weight %d must be non-negative, got %f", i, w)
			}
		}
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ExportsDir: "exports",
			CostFile:   "data/product_costs.json",
		},
		Upload: UploadConfig{
			MaxFileBytes: 20 << 20,
			BatchTTL:     time.Hour,
			MaxBatches:   64,
		},
	}
}
