package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		cfg, err := load(viper.New(), path, false)
		require.NoError(t, err)

		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, ":8080", cfg.HTTPServerAddr)
		assert.Equal(t, CatalogFixtures, cfg.Catalog.Source)
		assert.Equal(t, StorageMemory, cfg.Storage.Driver)
		assert.Equal(t, "cartItems", cfg.Storage.CartKey)
		assert.Equal(t, 30*time.Minute, cfg.Storage.SessionIdle)
		assert.Equal(t, AINone, cfg.AI.Provider)
		assert.Equal(t, 350*time.Millisecond, cfg.AI.MinInterval)
		assert.Equal(t, 2*time.Second, cfg.Checkout.Delay)
		assert.Equal(t, NotificationsInbox, cfg.Notifications.Backend)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Broker.SeedBrokers)
	})

	t.Run("FileAndEnv", func(t *testing.T) {
		path := writeFile(t, `
log_level: debug
http_server_addr: ":7000"
storage:
  driver: sqlite
  dsn: /tmp/storefront.db
ai:
  provider: gemini
checkout:
  delay: 500ms
`)
		t.Setenv("STOREFRONT_HTTP_SERVER_ADDR", ":9000")
		t.Setenv("STOREFRONT_BROKER_SEED_BROKERS", "a:9092,b:9092")
		t.Setenv("GEMINI_API_KEY", "secret")

		cfg, err := load(viper.New(), path, true)
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, ":9000", cfg.HTTPServerAddr)
		assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
		assert.Equal(t, "/tmp/storefront.db", cfg.Storage.DSN)
		assert.Equal(t, "secret", cfg.AI.APIKey)
		assert.Equal(t, 500*time.Millisecond, cfg.Checkout.Delay)
		assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Broker.SeedBrokers)
	})

	t.Run("MissingExplicitFile", func(t *testing.T) {
		_, err := load(viper.New(), filepath.Join(t.TempDir(), "none.yaml"), true)
		assert.Error(t, err)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := writeFile(t, "unknown_key: 1\n")
		_, err := load(viper.New(), path, true)
		assert.Error(t, err)
	})

	t.Run("InvalidChoices", func(t *testing.T) {
		path := writeFile(t, `
catalog:
  source: xlsx
storage:
  driver: mongo
ai:
  provider: gemini
`)
		t.Setenv("GEMINI_API_KEY", "")
		_, err := load(viper.New(), path, true)
		require.Error(t, err)
		assert.ErrorContains(t, err, "storage.driver")
		assert.ErrorContains(t, err, "catalog.path")
		assert.ErrorContains(t, err, "ai.api_key")
	})
}

func TestGetConfigFilepath(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		path, explicit := getConfigFilepath([]string{"storefront"})
		assert.Equal(t, defaultConfigFile, path)
		assert.False(t, explicit)
	})

	t.Run("Flag", func(t *testing.T) {
		path, explicit := getConfigFilepath(
			[]string{"storefront", "--config", "/etc/storefront.yaml", "--other"},
		)
		assert.Equal(t, "/etc/storefront.yaml", path)
		assert.True(t, explicit)
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv(configFileEnvName, "/env.yaml")
		path, explicit := getConfigFilepath([]string{"storefront"})
		assert.Equal(t, "/env.yaml", path)
		assert.True(t, explicit)
	})
}

func TestMask(t *testing.T) {
	assert.Empty(t, mask(""))
	assert.Equal(t, maskedSecret, mask("token"))
}
