package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchemaJSON(t *testing.T) {
	schemaJSON, err := GenerateSchemaJSON()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(schemaJSON), &schema))

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema should have properties")

	for _, key := range []string{"asset", "timezone", "coingecko", "prediction", "analysis", "indicators", "server", "log"} {
		assert.Contains(t, properties, key)
	}

	coingecko := properties["coingecko"].(map[string]any)["properties"].(map[string]any)
	assert.Contains(t, coingecko, "api_key_header")

	timeout := coingecko["timeout"].(map[string]any)
	assert.Equal(t, "string", timeout["type"])
}

func TestSampleYAMLRoundTrips(t *testing.T) {
	for _, key := range []string{
		"COINGECKO_API_KEY", "COINGECKO_API_KEY_HEADER", "COINGECKO_BASE_URL",
		"COINGECKO_REQUESTS_PER_SECOND", "PREDICTION_BASE_URL", "DASHBOARD_TIMEZONE",
		"LOG_LEVEL", "HTTP_ADDR",
	} {
		t.Setenv(key, "")
	}

	sample, err := SampleYAML()
	require.NoError(t, err)
	assert.Contains(t, string(sample), "timezone: Australia/Sydney")

	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(path, sample, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}
