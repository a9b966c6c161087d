package main

import (
	"errors"
	"flag"
	"time"

	"github.com/molpadia/ytmusic-gateway/internal/app"
	"github.com/molpadia/ytmusic-gateway/internal/infrastructure/ytmusic"
)

type Config struct {
	Addr     string
	CertFile string
	KeyFile  string

	CompatStatus bool
	MaxHomeLimit int
	CORSOrigins  []string

	BaseURL         string
	Language        string
	Location        string
	UpstreamTimeout time.Duration
	UpstreamRate    float64

	SongCacheTable string
	SongCacheTTL   time.Duration

	Debug   bool
	LogJSON bool
}

// Load the configuration from command line flags, falling back to environment variables.
func loadConfig(args []string) (*Config, error) {
	var (
		config      Config
		corsOrigins string
	)
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.StringVar(&config.Addr, "addr", env("ADDR", ":8000"), "web server address")
	fs.StringVar(&config.CertFile, "cert", env("CERT_FILE", ""), "path of TLS certificate file")
	fs.StringVar(&config.KeyFile, "key", env("CERT_KEY", ""), "path of TLS private key file")
	fs.BoolVar(&config.CompatStatus, "compat-status", envBool("COMPAT_STATUS", false), "answer catalog failures with HTTP 200 and skip parameter validation")
	fs.IntVar(&config.MaxHomeLimit, "max-home-limit", envInt("MAX_HOME_LIMIT", app.DefaultMaxHomeLimit), "largest accepted home feed limit")
	fs.StringVar(&corsOrigins, "cors-origins", env("CORS_ORIGINS", "*"), "comma separated origins allowed by CORS")
	fs.StringVar(&config.BaseURL, "ytmusic-url", env("YTMUSIC_BASE_URL", ytmusic.DefaultBaseURL), "base URL of the YouTube Music API")
	fs.StringVar(&config.Language, "language", env("YTMUSIC_LANGUAGE", "en"), "language of catalog documents")
	fs.StringVar(&config.Location, "location", env("YTMUSIC_LOCATION", ""), "country the home feed is tailored to")
	fs.DurationVar(&config.UpstreamTimeout, "upstream-timeout", envDuration("YTMUSIC_TIMEOUT", 15*time.Second), "timeout of catalog requests")
	fs.Float64Var(&config.UpstreamRate, "upstream-rate", envFloat("YTMUSIC_RATE", 5), "catalog requests per second, 0 disables throttling")
	fs.StringVar(&config.SongCacheTable, "song-cache-table", env("AWS_DB_SONG_CACHE", ""), "DynamoDB table caching song documents, empty disables the cache")
	fs.DurationVar(&config.SongCacheTTL, "song-cache-ttl", envDuration("SONG_CACHE_TTL", 24*time.Hour), "lifetime of cached song documents")
	fs.BoolVar(&config.Debug, "debug", envBool("DEBUG", false), "enable debug logging")
	fs.BoolVar(&config.LogJSON, "log-json", envBool("LOG_JSON", false), "write logs as JSON")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	config.CORSOrigins = splitList(corsOrigins)

	if config.MaxHomeLimit < 0 {
		return nil, errors.New("max-home-limit must not be negative")
	}
	if len(config.CORSOrigins) == 0 {
		return nil, errors.New("cors-origins must name at least one origin")
	}
	if (config.CertFile == "") != (config.KeyFile == "") {
		return nil, errors.New("cert and key must be given together")
	}
	return &config, nil
}
