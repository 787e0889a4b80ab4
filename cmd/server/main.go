/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the travel allowance server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (app.env, then environment)
  2. Initialize logger
  3. Initialize SQLite store
  4. Pick the rates table
  5. Create API handler and router
  6. Start server with graceful shutdown

RATES TABLE:
  The newest version stored in the database wins. Without one, RATES_FILE
  is loaded, or the built-in preset table is used, and the result is stored
  as version 1 so later restarts see the same table.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

ENVIRONMENT:
  APP_ENV               development | production (default: development)
  LOG_LEVEL             zerolog level (default: info)
  HTTP_HOST, HTTP_PORT  Listen address (default: 0.0.0.0:8080)
  DB_PATH               SQLite path, ":memory:" allowed (default: sgtri.db)
  RATES_FILE            JSON rates table used to seed an empty database
  RATES_RD_PROJECT_TYPES Comma-separated project codes under RD 462/2002
  CORS_ALLOWED_ORIGINS  Comma-separated origins (default: *)

SEE ALSO:
  - config/config.go: Configuration loading
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clb2clb2/sgtri-desp-sub000/api"
	"github.com/clb2clb2/sgtri-desp-sub000/config"
	"github.com/clb2clb2/sgtri-desp-sub000/logging"
	"github.com/clb2clb2/sgtri-desp-sub000/rates"
	"github.com/clb2clb2/sgtri-desp-sub000/store"
	"github.com/clb2clb2/sgtri-desp-sub000/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Environment, cfg.LogLevel)

	// Initialize store
	st, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("failed to initialize database")
	}
	defer st.Close()

	table, err := loadRates(context.Background(), st, cfg.Rates.File, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load rates table")
	}

	// Initialize handler
	handler := api.NewHandler(st, table, log, api.NewMetrics(nil))
	if len(cfg.Rates.RDProjectTypes) > 0 {
		handler.RDProjectTypes = cfg.Rates.RDProjectTypes
		handler.SetRates(table)
	}

	// Create router
	router := api.NewRouter(handler, cfg.HTTP.CORSAllowedOrigins)

	// Create server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Environment).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server stopped")
}

// loadRates returns the newest stored table. On an empty store it seeds one
// from file, or from the preset table when file is empty.
func loadRates(ctx context.Context, st store.Store, file string, log zerolog.Logger) (*rates.Table, error) {
	rec, err := st.LatestRates(ctx)
	switch {
	case err == nil:
		table, err := rates.ParseTable(rec.ConfigJSON)
		if err != nil {
			return nil, fmt.Errorf("stored rates version %d: %w", rec.Version, err)
		}
		log.Info().Int64("version", rec.Version).Msg("rates table loaded from database")
		return table, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	table := rates.DefaultTable()
	source := "preset"
	if file != "" {
		if table, err = rates.LoadFile(file); err != nil {
			return nil, err
		}
		source = file
	}

	data, err := rates.Marshal(table)
	if err != nil {
		return nil, err
	}
	rec, err = st.SaveRates(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("seed rates table: %w", err)
	}
	log.Info().Int64("version", rec.Version).Str("source", source).Msg("rates table seeded")
	return table, nil
}
