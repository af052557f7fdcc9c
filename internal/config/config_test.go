package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "DB_DRIVER", "GEMINI_MODEL", "STARTING_COINS", "AI_TIMEOUT", "STRICT_DEBIT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 50, cfg.StartingCoins)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.False(t, cfg.StrictDebit)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestProblems(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		cfg := &Config{}
		problems := cfg.Problems()
		assert.Contains(t, problems, ErrMissingGeminiKey)
		assert.Contains(t, problems, ErrMissingIdentity)
		assert.Contains(t, problems, ErrMissingDSN)
	})

	t.Run("local jwt is enough for identity", func(t *testing.T) {
		cfg := &Config{GeminiAPIKey: "k", SupabaseJWTSecret: "s", DBDSN: "file::memory:"}
		assert.Empty(t, cfg.Problems())
		assert.True(t, cfg.UseLocalJWT())
	})

	t.Run("remote identity needs url and key", func(t *testing.T) {
		cfg := &Config{GeminiAPIKey: "k", SupabaseURL: "https://x.supabase.co", DBDSN: "dsn"}
		assert.Equal(t, []error{ErrMissingIdentity}, cfg.Problems())
	})
}
