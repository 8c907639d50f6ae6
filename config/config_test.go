package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
log_level: debug
http:
  addr: ":9000"
  handler_timeout: 3s
database:
  connection_string: mongodb://localhost:27017
  database_name: CatalogDb
broker:
  seed_brokers: ["localhost:9092"]
  schema_registry_urls: ["http://localhost:8081"]
  product_events_topic: product-events
`

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		cfg, err := load(writeConfig(t, testConfigYAML))
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, ":9000", cfg.HTTP.Addr)
		assert.Equal(t, 3*time.Second, cfg.HTTP.HandlerTimeout)
		assert.Equal(t, 5*time.Second, cfg.HTTP.ReadHeaderTimeout)
		assert.Equal(t, "mongodb://localhost:27017", cfg.Database.ConnectionString)
		assert.Equal(t, "Products", cfg.Database.ProductsCollection)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Broker.SeedBrokers)
		assert.Equal(t, "product-events", cfg.Broker.ProductEventsTopic)
		assert.True(t, cfg.EventsEnabled())
		assert.False(t, cfg.TLSEnabled())
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("CATALOG_LOG_LEVEL", "warn")
		t.Setenv("CATALOG_DATABASE_DATABASE_NAME", "Other")
		t.Setenv("CATALOG_BROKER_SEED_BROKERS", "b1:9092,b2:9092")

		cfg, err := load(writeConfig(t, testConfigYAML))
		require.NoError(t, err)

		assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
		assert.Equal(t, "Other", cfg.Database.DatabaseName)
		assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.Broker.SeedBrokers)
	})

	t.Run("EnvOnly", func(t *testing.T) {
		t.Setenv("CATALOG_DATABASE_CONNECTION_STRING", "mongodb://db:27017")

		cfg, err := load("")
		require.NoError(t, err)

		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, ":8000", cfg.HTTP.Addr)
		assert.Equal(t, "CatalogDb", cfg.Database.DatabaseName)
		assert.False(t, cfg.EventsEnabled())
	})

	t.Run("MissingConnectionString", func(t *testing.T) {
		_, err := load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.connection_string is required")
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := load(writeConfig(t, testConfigYAML+"unknown_key: 1\n"))
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.HTTP.Addr = ":8000"
		c.HTTP.HandlerTimeout = time.Second
		c.Database.ConnectionString = "mongodb://localhost:27017"
		c.Database.DatabaseName = "CatalogDb"
		return c
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("BrokersWithoutRegistry", func(t *testing.T) {
		c := valid()
		c.Broker.SeedBrokers = []string{"localhost:9092"}
		c.Broker.ProductEventsTopic = "events"
		assert.ErrorContains(t, c.Validate(), "schema_registry_urls")
	})

	t.Run("PartialTLS", func(t *testing.T) {
		c := valid()
		c.TLS.CA = "ca.pem"
		assert.ErrorContains(t, c.Validate(), "tls.cert")
	})
}
