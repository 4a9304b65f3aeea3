package config

import (
	"testing"
	"time"

	"github.com/doda2025-team8/model-service/internal/envvar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(envvar.GitHubRepo, "acme/classifier")
	t.Setenv(envvar.ModelFetchTimeout, "2m")
	t.Setenv(envvar.ModelServiceGRPCPort, "9090")
	t.Setenv(envvar.ModelServiceLogLevel, "debug")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, "acme/classifier", cfg.Release.Repo)
	assert.Equal(t, 2*time.Minute, cfg.Release.Timeout)
	assert.Equal(t, 9090, cfg.Server.GRPCPort)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched values keep their defaults.
	assert.Equal(t, LatestVersion, cfg.Release.Version)
}

func TestApplyEnv_EmptyValuesAreIgnored(t *testing.T) {
	t.Setenv(envvar.ModelVersion, "")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, LatestVersion, cfg.Release.Version)
}

func TestApplyEnv_FetchTimeout(t *testing.T) {
	testCases := map[string]time.Duration{
		"60":   60 * time.Second,
		" 15 ": 15 * time.Second,
		"90s":  90 * time.Second,
		"2m":   2 * time.Minute,
	}

	for value, want := range testCases {
		t.Run(value, func(t *testing.T) {
			t.Setenv(envvar.ModelFetchTimeout, value)

			cfg := Default()
			require.NoError(t, ApplyEnv(cfg))
			assert.Equal(t, want, cfg.Release.Timeout)
		})
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{name: envvar.ModelServicePort, value: "not-a-port"},
		{name: envvar.ModelFetchTimeout, value: "forever"},
		{name: envvar.ModelFetchTimeout, value: "0"},
		{name: envvar.ModelFetchTimeout, value: "-5"},
		{name: envvar.ModelFetchTimeout, value: "-1s"},
	}

	for _, tc := range testCases {
		t.Run(tc.name+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.name, tc.value)
			assert.ErrorContains(t, ApplyEnv(Default()), "config: invalid "+tc.name)
		})
	}
}
