package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/imagerelay/api/internal/config"
	"github.com/imagerelay/api/internal/imagegen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "imagerelay",
	Short:         "Prompt-to-image relay with provider fallback",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// newLogger builds the zap logger writing to stdout. Development builds
// logging at debug get zap's development config.
func newLogger(cfg *config.Config) *zap.Logger {
	logger, err := loggerConfig(cfg).Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	return logger
}

func loggerConfig(cfg *config.Config) zap.Config {
	zapConfig := zap.NewProductionConfig()
	if cfg.Environment == "development" && cfg.LogLevel == "debug" {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}
	return zapConfig
}

// newRelay loads the provider table and builds the relay.
func newRelay(cfg *config.Config, logger *zap.Logger) (*imagegen.Relay, error) {
	file := imagegen.DefaultProviderFile()
	if cfg.ProvidersFile != "" {
		loaded, err := imagegen.LoadProviderFile(cfg.ProvidersFile)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	registry, err := file.Registry(os.Getenv, cfg.DefaultProvider)
	if err != nil {
		return nil, fmt.Errorf("invalid provider configuration: %w", err)
	}

	for _, p := range registry.Providers() {
		if !p.Enabled() {
			logger.Warn("provider disabled: API key not configured", zap.String("provider", p.Name))
		}
	}

	client := &http.Client{Timeout: cfg.ProviderTimeout}
	return imagegen.NewRelay(registry, logger, imagegen.WithHTTPClient(client)), nil
}
