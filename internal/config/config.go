// Package config loads environment variables and the optional profile
// file at startup. Fail-fast: a malformed value stops the process before
// any search runs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mkrol/bike-hunter/internal/search"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port                string
	DataDir             string
	BaseURL             string
	UserAgent           string
	SearchIntervalHours int    // how often the scheduled quick search fires
	ProfilePath         string // optional YAML profile overriding the default
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = search.DefaultBaseURL
	}

	interval := 6
	if s := os.Getenv("SEARCH_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SEARCH_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	return &Config{
		Port:                port,
		DataDir:             dataDir,
		BaseURL:             baseURL,
		UserAgent:           os.Getenv("USER_AGENT"),
		SearchIntervalHours: interval,
		ProfilePath:         os.Getenv("PROFILE_PATH"),
	}, nil
}

// Profile returns the search profile: the built-in default, overridden by
// the YAML file at ProfilePath when one is configured.
func (c *Config) Profile() (search.Profile, error) {
	profile := search.DefaultProfile()
	if c.ProfilePath == "" {
		return profile, nil
	}

	data, err := os.ReadFile(c.ProfilePath)
	if err != nil {
		return search.Profile{}, fmt.Errorf("read profile file: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return search.Profile{}, fmt.Errorf("parse profile file %s: %w", c.ProfilePath, err)
	}
	if err := profile.Validate(); err != nil {
		return search.Profile{}, fmt.Errorf("profile file %s: %w", c.ProfilePath, err)
	}
	return profile, nil
}
