package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/yigit/eduadmin/internal/bootstrap"
	"github.com/yigit/eduadmin/internal/config"
	"github.com/yigit/eduadmin/internal/db"
	"github.com/yigit/eduadmin/internal/pkg/messaging"
)

// Server holds the state for the HTTP server.
type Server struct {
	config        *config.Config
	router        *gin.Engine
	database      *db.PostgresDB
	publisher     messaging.Publisher
	meterProvider *sdkmetric.MeterProvider
	logger        zerolog.Logger
	http          *http.Server
	stopCleanup   context.CancelFunc
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	ctx := context.Background()

	meterProvider, m, err := bootstrap.SetupTelemetry(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}

	s := &Server{
		config:        cfg,
		meterProvider: meterProvider,
		logger:        lgr,
	}

	s.database, err = bootstrap.SetupDatabase(ctx, cfg, m, lgr)
	if err != nil {
		s.closeResources(ctx)
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s.publisher = bootstrap.SetupPublisher(cfg, m, lgr)

	deps, err := bootstrap.BuildDependencies(cfg, s.database, s.publisher, lgr)
	if err != nil {
		s.closeResources(ctx)
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	s.router = bootstrap.SetupRouter(cfg, deps, m)

	cleanupCtx, cancel := context.WithCancel(context.Background())
	s.stopCleanup = cancel
	bootstrap.StartTokenCleanup(cleanupCtx, deps.Repos.TokenRepository, bootstrap.TokenCleanupInterval, lgr)

	return s, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Channel to listen for errors starting the server
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closeResources(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops the HTTP server first, then drains NATS, flushes metrics and
// closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var shutdownErr error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = errors.Join(shutdownErr, err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	shutdownErr = errors.Join(shutdownErr, s.closeResources(ctx))

	s.logger.Info().Msg("Server shutdown process complete.")
	return shutdownErr
}

func (s *Server) closeResources(ctx context.Context) error {
	var err error

	if s.stopCleanup != nil {
		s.stopCleanup()
	}

	if s.publisher != nil {
		s.logger.Info().Msg("Draining NATS connection...")
		if closeErr := s.publisher.Close(); closeErr != nil {
			s.logger.Error().Err(closeErr).Msg("NATS drain error")
			err = errors.Join(err, closeErr)
		}
	}

	if s.meterProvider != nil {
		s.logger.Info().Msg("Flushing metrics...")
		if mpErr := s.meterProvider.Shutdown(ctx); mpErr != nil {
			s.logger.Error().Err(mpErr).Msg("Meter provider shutdown error")
			err = errors.Join(err, mpErr)
		}
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	return err
}
