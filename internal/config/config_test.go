package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10000.0, cfg.Discovery.RadiusMeters)
	assert.Equal(t, 20, cfg.Discovery.PageSize)
	assert.Equal(t, BackendPostgres, cfg.Discovery.Backend)
	assert.Equal(t, "places", cfg.Discovery.Collection)
	assert.Equal(t, 10*time.Second, cfg.Location.Timeout)
	assert.True(t, cfg.Location.HighAccuracy)
	assert.Equal(t, time.Duration(0), cfg.Location.MaxAge)
	assert.Equal(t, 13.0246, cfg.Location.FallbackLat)
	assert.Equal(t, 77.7626, cfg.Location.FallbackLon)
	assert.Equal(t, 3, cfg.Wishlist.WriteRetries)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DISCOVERY_RADIUS_M", "2500")
	t.Setenv("DISCOVERY_PAGE_SIZE", "5")
	t.Setenv("DISCOVERY_BACKEND", "elasticsearch")
	t.Setenv("LOCATION_HIGH_ACCURACY", "false")
	t.Setenv("ES_ADDRESSES", "http://es1:9200, http://es2:9200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2500.0, cfg.Discovery.RadiusMeters)
	assert.Equal(t, 5, cfg.Discovery.PageSize)
	assert.Equal(t, BackendElasticsearch, cfg.Discovery.Backend)
	assert.False(t, cfg.Location.HighAccuracy)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Elasticsearch.Addresses)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("DISCOVERY_BACKEND", "firestore")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestConfig_Addresses(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Redis:    RedisConfig{Host: "redis", Port: 6379},
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "places", SSLMode: "disable"},
	}

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, "redis:6379", cfg.GetRedisAddr())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=places sslmode=disable", cfg.GetDatabaseDSN())
}
