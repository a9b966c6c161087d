package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8000", config.Addr)
	assert.False(t, config.CompatStatus)
	assert.Equal(t, 100, config.MaxHomeLimit)
	assert.Equal(t, []string{"*"}, config.CORSOrigins)
	assert.Equal(t, "https://music.youtube.com", config.BaseURL)
	assert.Equal(t, 15*time.Second, config.UpstreamTimeout)
	assert.Empty(t, config.SongCacheTable)
	assert.Equal(t, 24*time.Hour, config.SongCacheTTL)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("COMPAT_STATUS", "true")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://music.example.com,")
	t.Setenv("YTMUSIC_TIMEOUT", "3s")
	t.Setenv("AWS_DB_SONG_CACHE", "songs")
	t.Setenv("MAX_HOME_LIMIT", "not-a-number")

	config, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, ":9000", config.Addr)
	assert.True(t, config.CompatStatus)
	assert.Equal(t, []string{"http://localhost:5173", "https://music.example.com"}, config.CORSOrigins)
	assert.Equal(t, 3*time.Second, config.UpstreamTimeout)
	assert.Equal(t, "songs", config.SongCacheTable)
	assert.Equal(t, 100, config.MaxHomeLimit)
}

func TestLoadConfigFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("COMPAT_STATUS", "true")

	config, err := loadConfig([]string{"-addr", ":9100", "-compat-status=false", "-max-home-limit", "20"})
	require.NoError(t, err)

	assert.Equal(t, ":9100", config.Addr)
	assert.False(t, config.CompatStatus)
	assert.Equal(t, 20, config.MaxHomeLimit)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := [][]string{
		{"-max-home-limit", "-1"},
		{"-cert", "server.crt"},
		{"-unknown"},
		{"-cors-origins", ""},
		{"-cors-origins", " , "},
	}
	for _, args := range tests {
		_, err := loadConfig(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestLoadConfigEmptyCORSOriginsFromEnvironment(t *testing.T) {
	t.Setenv("CORS_ORIGINS", ",")

	_, err := loadConfig(nil)
	assert.EqualError(t, err, "cors-origins must name at least one origin")
}
