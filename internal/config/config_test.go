package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CANDIDATES_DB", "TRAINING_OUTPUT", "FEATURE_BACKEND", "ML_API_URL",
		"FEATURE_TIMEOUT_SEC", "ML_READY_TIMEOUT_SEC", "FFPROBE_BIN", "EXTRACT_WORKERS",
	} {
		t.Setenv(k, "")
	}
	// keep godotenv from picking up a developer's .env
	chdirForTest(t, t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	assert.Equal(t, BackendHTTP, cfg.FeatureBackend)
	assert.Equal(t, DefaultMLAPIURL, cfg.MLAPIURL)
	assert.Equal(t, 30*time.Second, cfg.FeatureTimeout)
	assert.Equal(t, time.Duration(0), cfg.ReadyTimeout)
	assert.Equal(t, "ffprobe", cfg.FFProbeBinary)
	assert.Equal(t, 1, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CANDIDATES_DB", "/data/candidates.db")
	t.Setenv("TRAINING_OUTPUT", "out.xlsx")
	t.Setenv("FEATURE_BACKEND", "FFProbe")
	t.Setenv("FEATURE_TIMEOUT_SEC", "5")
	t.Setenv("EXTRACT_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/candidates.db", cfg.DatabasePath)
	assert.Equal(t, "out.xlsx", cfg.OutputPath)
	assert.Equal(t, BackendFFProbe, cfg.FeatureBackend)
	assert.Equal(t, 5*time.Second, cfg.FeatureTimeout)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadRejectsBadInteger(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXTRACT_WORKERS", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXTRACT_WORKERS")
}

func TestValidate(t *testing.T) {
	base := Config{
		DatabasePath:   "x.db",
		FeatureBackend: BackendMock,
		FeatureTimeout: time.Second,
		Workers:        1,
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.FeatureBackend = "librosa" }, "unknown feature backend"},
		{"http without url", func(c *Config) { c.FeatureBackend = BackendHTTP; c.MLAPIURL = "" }, "ML_API_URL"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"zero timeout", func(c *Config) { c.FeatureTimeout = 0 }, "feature timeout"},
		{"missing db", func(c *Config) { c.DatabasePath = " " }, "database path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	ok := base
	assert.NoError(t, ok.Validate())
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (stand-in for testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
