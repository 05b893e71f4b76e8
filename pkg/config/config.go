package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Feeds FeedsConfig `yaml:"feeds" json:"feeds" jsonschema:"description=Search feed configuration"`

	Summary struct {
		MaxChars int `yaml:"max_chars" json:"max_chars" jsonschema:"default=260,description=Maximum summary length in characters"`
	} `yaml:"summary" json:"summary" jsonschema:"description=Summary normalization configuration"`

	Artifact struct {
		Path string `yaml:"path" json:"path" jsonschema:"default=data/items.json,description=Path of the generated JSON artifact"`
	} `yaml:"artifact" json:"artifact" jsonschema:"description=Artifact output configuration"`

	Schedule struct {
		UpdateInterval int `yaml:"update_interval" json:"update_interval" jsonschema:"default=30,description=Ingestion run interval in minutes"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Full-text extraction configuration"`
}

// FeedsConfig holds search feed settings
type FeedsConfig struct {
	Queries       []string      `yaml:"queries" json:"queries" jsonschema:"required,description=Search query strings"`
	Language      string        `yaml:"language" json:"language" jsonschema:"default=en,description=Feed language code"`
	Region        string        `yaml:"region" json:"region" jsonschema:"default=US,description=Feed region code"`
	PerQueryLimit int           `yaml:"per_query_limit" json:"per_query_limit" jsonschema:"default=50,description=Maximum entries kept per query"`
	MaxItems      int           `yaml:"max_items" json:"max_items" jsonschema:"default=600,description=Maximum total items in the artifact"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Fetch timeout per feed"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsradar/1.0,description=User agent for feed requests"`
}

// ExtractionConfig holds full-text extraction settings, used to backfill
// summaries for entries whose feed description is empty
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable full-text extraction"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum extracted text length to consider valid"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsradar/1.0,description=User agent for HTTP requests"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for feeds
	if cfg.Feeds.Language == "" {
		cfg.Feeds.Language = "en"
	}
	if cfg.Feeds.Region == "" {
		cfg.Feeds.Region = "US"
	}
	if cfg.Feeds.PerQueryLimit == 0 {
		cfg.Feeds.PerQueryLimit = 50
	}
	if cfg.Feeds.MaxItems == 0 {
		cfg.Feeds.MaxItems = 600
	}
	if cfg.Feeds.Timeout == 0 {
		cfg.Feeds.Timeout = 20 * time.Second
	}
	if cfg.Feeds.UserAgent == "" {
		cfg.Feeds.UserAgent = "Newsradar/1.0"
	}

	// set defaults for summary and artifact
	if cfg.Summary.MaxChars == 0 {
		cfg.Summary.MaxChars = 260
	}
	if cfg.Artifact.Path == "" {
		cfg.Artifact.Path = "data/items.json"
	}

	// set defaults for schedule
	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = 30
	}

	// set defaults for extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.MinTextLength == 0 {
		cfg.Extraction.MinTextLength = 100
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "Newsradar/1.0"
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate feeds config
	if len(cfg.Feeds.Queries) == 0 {
		return fmt.Errorf("feeds.queries is required")
	}
	for i, q := range cfg.Feeds.Queries {
		if q == "" {
			return fmt.Errorf("feeds.queries[%d] is empty", i)
		}
	}
	if cfg.Feeds.PerQueryLimit < 1 {
		return fmt.Errorf("feeds.per_query_limit must be at least 1")
	}
	if cfg.Feeds.MaxItems < 1 {
		return fmt.Errorf("feeds.max_items must be at least 1")
	}
	if cfg.Feeds.Timeout < time.Second {
		return fmt.Errorf("feeds.timeout must be at least 1 second")
	}

	// validate summary config
	if cfg.Summary.MaxChars < 10 {
		return fmt.Errorf("summary.max_chars must be at least 10")
	}

	// validate extraction config
	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return fmt.Errorf("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction min_text_length must be non-negative")
		}
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFeedsConfig returns search feed configuration
func (c *Config) GetFeedsConfig() FeedsConfig {
	return c.Feeds
}

// GetExtractionConfig returns full-text extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}

// UpdateInterval returns the ingestion interval as a duration
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.Schedule.UpdateInterval) * time.Minute
}
