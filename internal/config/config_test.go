package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "USE_DATABASE", "DB_DRIVER", "DB_DSN", "QUERY_CACHE_TTL_MS", "IMAGE_INDEX_TTL_MS", "PUBLIC_BASE_URL", "DB_SERIES_FILTER"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, 3000, cfg.Port)
	assert.True(t, cfg.UseDatabase)
	assert.Equal(t, "odbc", cfg.DBDriver)
	assert.Empty(t, cfg.DBDSN)
	assert.Equal(t, "/api/uploads", cfg.PublicBaseURL)
	assert.Equal(t, "4", cfg.DBSeriesFilter)
	assert.Equal(t, 15*time.Second, cfg.QueryCacheTTL)
	assert.Equal(t, time.Minute, cfg.ImageIndexTTL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("USE_DATABASE", "no")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_TABLE", "NOTAS")
	t.Setenv("QUERY_CACHE_TTL_MS", "500")
	t.Setenv("READ_TIMEOUT", "5s")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "2")

	cfg := FromEnv()
	assert.Equal(t, 8081, cfg.Port)
	assert.False(t, cfg.UseDatabase)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, "NOTAS", cfg.DBTable)
	assert.Equal(t, 500*time.Millisecond, cfg.QueryCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadSize)
}

func TestFromEnv_ZeroQueryCacheTTL(t *testing.T) {
	t.Setenv("QUERY_CACHE_TTL_MS", "0")
	assert.Zero(t, FromEnv().QueryCacheTTL)
}

func TestGetEnvHelpers_InvalidValuesUseDefaults(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_DURATION", "soon")
	t.Setenv("SOME_BOOL", "TRUE")

	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
	assert.Equal(t, time.Second, getEnvDuration("SOME_DURATION", time.Second))
	assert.True(t, getEnvBool("SOME_BOOL", false))
	assert.Equal(t, "fallback", getEnvString("UNSET_KEY_FOR_TEST", "fallback"))
}
