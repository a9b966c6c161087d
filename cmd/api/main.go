package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/joho/godotenv"
	"github.com/molpadia/ytmusic-gateway/internal/app"
	"github.com/molpadia/ytmusic-gateway/internal/domain/repository"
	"github.com/molpadia/ytmusic-gateway/internal/infrastructure/persistence"
	"github.com/molpadia/ytmusic-gateway/internal/infrastructure/ytmusic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Variables already set in the environment win over the .env file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}
	config, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(config)

	catalog, err := newCatalog(config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create catalog")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	handler := app.NewHandler(catalog,
		app.WithCompatStatus(config.CompatStatus),
		app.WithMaxHomeLimit(config.MaxHomeLimit),
		app.WithCORSOrigins(config.CORSOrigins...),
		app.WithMetrics(app.NewMetrics(reg)),
	)

	srv := &http.Server{
		Handler:      handler,
		Addr:         config.Addr,
		WriteTimeout: config.UpstreamTimeout + 15*time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.Addr).Bool("compat_status", config.CompatStatus).Msg("the server started")
		var err error
		if config.CertFile != "" && config.KeyFile != "" {
			err = srv.ListenAndServeTLS(config.CertFile, config.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// Wait for shutdown signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down gracefully")
	}
}

// Set up zerolog logger for debug and pretty print
func setupLogger(config *Config) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if !config.LogJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// Build the catalog client, read through the song cache when a table is configured.
func newCatalog(config *Config) (repository.Catalog, error) {
	client := ytmusic.NewClient(
		ytmusic.WithBaseURL(config.BaseURL),
		ytmusic.WithLanguage(config.Language),
		ytmusic.WithLocation(config.Location),
		ytmusic.WithTimeout(config.UpstreamTimeout),
		ytmusic.WithRateLimit(config.UpstreamRate, int(config.UpstreamRate)+1),
		ytmusic.WithUnplayableDocuments(config.CompatStatus),
	)
	if config.SongCacheTable == "" {
		return client, nil
	}
	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}
	log.Info().Str("table", config.SongCacheTable).Dur("ttl", config.SongCacheTTL).Msg("song cache enabled")
	return persistence.NewCachedCatalog(client, persistence.NewSongCache(sess, config.SongCacheTable, config.SongCacheTTL)), nil
}
