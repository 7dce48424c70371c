package config

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROWKIT_LOG_LEVEL", "")
	t.Setenv("ROWKIT_SEQ_URL", "")
	t.Setenv("ROWKIT_ID_STRATEGY", "")

	cfg, err := Load()
	assert.NilError(t, err)
	assert.DeepEqual(t, *cfg, Config{LogLevel: "info", IDStrategy: "uuid"})
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ROWKIT_LOG_LEVEL", "debug")
	t.Setenv("ROWKIT_SEQ_URL", "http://localhost:5341")
	t.Setenv("ROWKIT_ID_STRATEGY", "ksuid")

	cfg, err := Load()
	assert.NilError(t, err)
	assert.Equal(t, cfg.LogLevel, "debug")
	assert.Equal(t, cfg.SeqURL, "http://localhost:5341")
	assert.Equal(t, cfg.IDStrategy, "ksuid")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"level":    {"ROWKIT_LOG_LEVEL", "loud"},
		"seq url":  {"ROWKIT_SEQ_URL", "not a url"},
		"strategy": {"ROWKIT_ID_STRATEGY", "snowflake"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("ROWKIT_TEST_VALUE", "")
	assert.Equal(t, GetEnvOrDefault("ROWKIT_TEST_VALUE", "fallback"), "fallback")

	t.Setenv("ROWKIT_TEST_VALUE", "set")
	assert.Equal(t, GetEnvOrDefault("ROWKIT_TEST_VALUE", "fallback"), "set")
}
