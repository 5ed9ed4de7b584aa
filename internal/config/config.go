// Package config resolves runtime settings from the environment (and an optional .env file).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Feature backends understood by the extract command.
const (
	BackendHTTP    = "http"
	BackendFFProbe = "ffprobe"
	BackendMock    = "mock"
)

const (
	DefaultDatabasePath = "recruitment.db"
	DefaultOutputPath   = "training_data.csv"
	DefaultMLAPIURL     = "http://localhost:8000"
)

type Config struct {
	DatabasePath   string
	OutputPath     string
	FeatureBackend string
	MLAPIURL       string
	FeatureTimeout time.Duration
	ReadyTimeout   time.Duration
	FFProbeBinary  string
	Workers        int
}

// Load reads .env when present and builds a Config from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // loads .env

	cfg := &Config{
		DatabasePath:   envOr("CANDIDATES_DB", DefaultDatabasePath),
		OutputPath:     envOr("TRAINING_OUTPUT", DefaultOutputPath),
		FeatureBackend: strings.ToLower(envOr("FEATURE_BACKEND", BackendHTTP)),
		MLAPIURL:       envOr("ML_API_URL", DefaultMLAPIURL),
		FFProbeBinary:  envOr("FFPROBE_BIN", "ffprobe"),
	}

	featureSec, err := envInt("FEATURE_TIMEOUT_SEC", 30)
	if err != nil {
		return nil, err
	}
	readySec, err := envInt("ML_READY_TIMEOUT_SEC", 0)
	if err != nil {
		return nil, err
	}
	workers, err := envInt("EXTRACT_WORKERS", 1)
	if err != nil {
		return nil, err
	}
	cfg.FeatureTimeout = time.Duration(featureSec) * time.Second
	cfg.ReadyTimeout = time.Duration(readySec) * time.Second
	cfg.Workers = workers

	return cfg, nil
}

// Validate rejects settings the extract command cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database path is required")
	}
	switch c.FeatureBackend {
	case BackendHTTP:
		if strings.TrimSpace(c.MLAPIURL) == "" {
			return fmt.Errorf("ML_API_URL is required for the %s backend", BackendHTTP)
		}
	case BackendFFProbe, BackendMock:
	default:
		return fmt.Errorf("unknown feature backend %q", c.FeatureBackend)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.FeatureTimeout <= 0 {
		return fmt.Errorf("feature timeout must be positive, got %s", c.FeatureTimeout)
	}
	if c.ReadyTimeout < 0 {
		return fmt.Errorf("ready timeout must not be negative, got %s", c.ReadyTimeout)
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", k, err)
	}
	return n, nil
}
