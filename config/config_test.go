package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "fittrack", cfg.JWT.Issuer)
	assert.Equal(t, 20, cfg.Feed.DefaultPageSize)
	assert.Equal(t, 100, cfg.Feed.MaxPageSize)
	assert.Equal(t, 30*time.Second, cfg.Feed.CacheTTL)
	assert.Equal(t, 2, cfg.Search.MinQueryLength)
	assert.Equal(t, 20, cfg.Search.MaxResults)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DATABASE", "fittrack_test")
	t.Setenv("JWT_EXPIRE_TIME", "2h")
	t.Setenv("FEED_DEFAULT_PAGE_SIZE", "10")
	t.Setenv("FEED_CACHE_TTL", "90s")
	t.Setenv("SEARCH_MIN_QUERY_LENGTH", "3")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "fittrack_test", cfg.Database.Database)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 10, cfg.Feed.DefaultPageSize)
	assert.Equal(t, 90*time.Second, cfg.Feed.CacheTTL)
	assert.Equal(t, 3, cfg.Search.MinQueryLength)
}

func TestLoadConfigInvalidEnvIgnored(t *testing.T) {
	t.Setenv("FEED_DEFAULT_PAGE_SIZE", "not-a-number")
	t.Setenv("JWT_EXPIRE_TIME", "soon")

	cfg := LoadConfig()
	assert.Equal(t, 20, cfg.Feed.DefaultPageSize)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
}
