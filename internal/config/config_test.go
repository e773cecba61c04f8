package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	// t.Setenv registers the restore; the vars must be absent, not empty,
	// for envconfig to fall back to the defaults.
	for _, key := range []string{"LEDGER_SERVER_PORT", "LEDGER_DATABASE_URL", "LEDGER_LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LEDGER_SERVER_PORT", "9090")
	t.Setenv("LEDGER_DATABASE_URL", "postgres://localhost/ledger")
	t.Setenv("LEDGER_LOG_FORMAT", "text")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres://localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, "text", cfg.LogFormat)
}
