// Package config provides configuration loading and validation for the
// resume journal service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tonypottakkal/verba-resume-journal/internal/ranking"
	"github.com/tonypottakkal/verba-resume-journal/internal/skills"
)

// Config holds the service configuration. Values load from an optional JSON
// file first; environment variables override file values.
type Config struct {
	// Server
	Port int `json:"port,omitempty"`

	// Storage. An empty DatabaseURL selects the in-memory stores.
	DatabaseURL string `json:"database_url,omitempty"`
	IndexPath   string `json:"index_path,omitempty"`

	// Auth. An empty secret disables authentication.
	AuthSecret string `json:"auth_secret,omitempty"`

	// Model access
	GeminiAPIKey  string `json:"api_key,omitempty"`
	ExtractModel  string `json:"extract_model,omitempty"`
	GenerateModel string `json:"generate_model,omitempty"`

	// Scoring
	ProficiencyWeights skills.ProficiencyWeights `json:"proficiency_weights"`
	Ranking            ranking.Params            `json:"ranking"`

	Debug bool `json:"debug,omitempty"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Port:               8080,
		IndexPath:          "journal.bleve",
		ProficiencyWeights: skills.DefaultProficiencyWeights(),
		Ranking:            ranking.DefaultParams(),
	}
}

// Load builds the configuration from an optional JSON file and the
// environment. path may be empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("INDEX_PATH"); v != "" {
		c.IndexPath = v
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		c.AuthSecret = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("EXTRACT_MODEL"); v != "" {
		c.ExtractModel = v
	}
	if v := os.Getenv("GENERATE_MODEL"); v != "" {
		c.GenerateModel = v
	}
	if v := os.Getenv("DEBUG"); v == "1" || v == "true" {
		c.Debug = true
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if err := c.ProficiencyWeights.Validate(); err != nil {
		return err
	}
	if err := c.Ranking.Validate(); err != nil {
		return err
	}
	return nil
}
