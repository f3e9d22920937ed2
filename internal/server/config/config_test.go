package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, StoreFile, cfg.StoreBackend)
	assert.Equal(t, 60*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "gemini-3-flash-preview", cfg.GeminiModel)
}

func TestParseJson_PartialOverlayKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr": ":9090",
		"store_backend": "postgres",
		"access_token_validity_duration": "2h"
	}`), 0o600))

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, StorePostgres, cfg.StoreBackend)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidityDuration)
	// untouched by the overlay
	assert.Equal(t, "secretKey", cfg.SecretKey)
	assert.Equal(t, "./data", cfg.DataDir)
}

func TestParseFlags_OverridesJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint_addr": ":9090"}`), 0o600))

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path, "-a", ":7070", "-t", "5"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
}
