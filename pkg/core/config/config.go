// Package config loads service settings from an optional YAML file.
// Upstream URLs and outbound User-Agent strings are deliberately NOT here:
// those are fixed literals owned by the fetch layer.
package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config carries the tunable knobs of the service. Zero values are replaced
// by defaults in Load, so a partial file only overrides what it names.
type Config struct {
	Port string `yaml:"port"`

	// Snapshot TTLs, in seconds.
	RankingTTLSeconds     int `yaml:"ranking_ttl_seconds"`
	FilingsTTLSeconds     int `yaml:"filings_ttl_seconds"`
	DescriptionTTLSeconds int `yaml:"description_ttl_seconds"`
	HeadlinesTTLSeconds   int `yaml:"headlines_ttl_seconds"`

	// Background ranking refresh period, in hours.
	RefreshIntervalHours int `yaml:"refresh_interval_hours"`

	// Number of entries on each side of the ranking.
	TopN int `yaml:"top_n"`
}

// Load reads path when it exists and fills in defaults for anything unset.
// A missing or unreadable file is not an error: the built-in defaults match
// production settings.
func Load(path string) Config {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("[config] ignoring malformed %s: %v", path, err)
			cfg = Config{}
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if p := os.Getenv("PORT"); p != "" {
		cfg.Port = p
	}
	if cfg.RankingTTLSeconds <= 0 {
		cfg.RankingTTLSeconds = 300
	}
	if cfg.FilingsTTLSeconds <= 0 {
		cfg.FilingsTTLSeconds = 300
	}
	if cfg.DescriptionTTLSeconds <= 0 {
		cfg.DescriptionTTLSeconds = 300
	}
	if cfg.HeadlinesTTLSeconds <= 0 {
		cfg.HeadlinesTTLSeconds = 300
	}
	if cfg.RefreshIntervalHours <= 0 {
		cfg.RefreshIntervalHours = 7 * 24
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	return cfg
}

func (c Config) RankingTTL() time.Duration     { return time.Duration(c.RankingTTLSeconds) * time.Second }
func (c Config) FilingsTTL() time.Duration     { return time.Duration(c.FilingsTTLSeconds) * time.Second }
func (c Config) DescriptionTTL() time.Duration { return time.Duration(c.DescriptionTTLSeconds) * time.Second }
func (c Config) HeadlinesTTL() time.Duration   { return time.Duration(c.HeadlinesTTLSeconds) * time.Second }
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalHours) * time.Hour
}
