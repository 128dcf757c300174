package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/pkordes/lucky/internal/config"
	"github.com/pkordes/lucky/internal/handler"
	"github.com/pkordes/lucky/internal/middleware"
	"github.com/pkordes/lucky/internal/service"
	"github.com/pkordes/lucky/spec"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

Environment:
  DATABASE_URL       postgres://... or sqlite://path (required)
  PORT               listen port (default 8080; --port overrides)
  LOG_LEVEL          debug, info, warn or error (default info)
  CORS_ORIGINS       comma-separated allowed origins
  SAMPLING_STRATEGY  ids or order (default ids)
  MAX_BODY_BYTES     request body limit in bytes (default 1048576)
  AUTO_MIGRATE       apply pending migrations on start (default false)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	// --- Config -----------------------------------------------------------
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	// --- Logger -----------------------------------------------------------
	logger := newLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	db, err := openStore(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return err
	}
	defer db.Close()

	// --- Router -----------------------------------------------------------
	svc := service.NewRestaurantService(db.Restaurants, service.WithStrategy(cfg.SamplingStrategy))
	srv := handler.NewServer(svc, db)
	logger.Info("sampling strategy selected", "strategy", svc.Strategy())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, logger, srv),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		logger.Error("server error", "error", err)
		return err
	case <-stop:
	}
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newRouter assembles the middleware chain and mounts the API.
// Middleware is applied in order: RequestID, RealIP, Logger, Recoverer, CORS,
// body limit. RequestID must run before the logger so each log line carries
// the ID; the recoverer sits inside the logger so panics are logged as 500s.
func newRouter(cfg config.Config, logger *slog.Logger, srv *handler.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewRecoverer(logger))
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})
	r.Mount("/", handler.NewHTTPHandler(srv, logger))
	return r
}
