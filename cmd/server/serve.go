package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/imagerelay/api/internal/config"
	"github.com/imagerelay/api/internal/eventbus"
	"github.com/imagerelay/api/internal/metrics"
	"github.com/imagerelay/api/internal/middleware"
	"github.com/imagerelay/api/internal/server"
	"github.com/imagerelay/api/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP relay",
	Long: `Run the HTTP relay.

Provider credentials are read from the environment (INFIP_API_KEY,
TYPEGPT_API_KEY, SAMURAIAPI_KEY, HYPERBOLIC_API_KEY). A provider without a
credential stays in the fallback chain but is skipped.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	logger := newLogger(cfg)
	defer logger.Sync()

	logger.Info("imagerelay starting...",
		zap.String("version", version),
		zap.String("environment", cfg.Environment),
	)

	shutdownTelemetry, err := telemetry.InitTracer(ctx, "imagerelay", cfg.OTLPEndpoint)
	if err != nil {
		// Tracing is optional; the collector may be down
		logger.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				logger.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	var events eventbus.Publisher = eventbus.NopPublisher{}
	if cfg.NATSURL != "" {
		publisher, err := eventbus.Connect(cfg.NATSURL, cfg.NATSSubject, logger)
		if err != nil {
			logger.Error("failed to connect to NATS, generation events disabled", zap.Error(err))
		} else {
			logger.Info("connected to NATS", zap.String("subject", cfg.NATSSubject))
			events = publisher
		}
	}
	defer events.Close()

	relay, err := newRelay(cfg, logger)
	if err != nil {
		logger.Error("failed to configure providers", zap.Error(err))
		return err
	}

	var gatherer prometheus.Gatherer
	if cfg.MetricsEnabled {
		if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
			logger.Error("failed to register metrics", zap.Error(err))
			return err
		}
		gatherer = prometheus.DefaultGatherer
	}

	if !cfg.AuthEnabled() {
		logger.Warn("no inbound credential configured, relay is open")
	}

	router := server.NewRouter(server.Options{
		Relay:   relay,
		Events:  events,
		Auth:    middleware.AuthConfig{JWTSecret: cfg.JWTSecret, APIKeyHash: cfg.APIKeyHash},
		Logger:  logger,
		Version: version,
		Metrics: gatherer,
		Release: cfg.Environment == "production",
		Swagger: cfg.Environment != "production",
	})

	if err := server.Run(ctx, ":"+cfg.Port, router, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}
