package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Run("variables override config", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("PORT", "8081")
		t.Setenv("MONGODB_URI", "mongodb://env:27017")
		t.Setenv("MONGODB_DATABASE", "EnvDB")
		t.Setenv("JWT_SECRET", "env-secret")
		t.Setenv("BCRYPT_COST", "11")
		t.Setenv("AUTH_RATE_LIMIT", "0")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, ":8081", cfg.EndpointAddr)
		assert.Equal(t, "mongodb://env:27017", cfg.MongoURI)
		assert.Equal(t, "EnvDB", cfg.DatabaseName)
		assert.Equal(t, "env-secret", cfg.SecretKey)
		assert.Equal(t, 11, cfg.PasswordHashCost)
		assert.Equal(t, 0, cfg.AuthRateLimit)
	})

	t.Run("malformed integers keep previous value", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("BCRYPT_COST", "high")

		cfg := &Config{PasswordHashCost: 7}
		parseEnv(cfg)

		assert.Equal(t, 7, cfg.PasswordHashCost)
	})

	t.Run("dotenv file is loaded", func(t *testing.T) {
		isolateEnv(t)
		// godotenv.Load does not override variables that are already set,
		// so the keys cleared by isolateEnv must be removed entirely.
		require.NoError(t, os.Unsetenv("MONGODB_DATABASE"))
		t.Cleanup(func() { _ = os.Unsetenv("MONGODB_DATABASE") })

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("MONGODB_DATABASE=DotEnvDB\n"), 0o600))
		dotEnvFile = path

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "DotEnvDB", cfg.DatabaseName)
	})
}
