package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imagerelay/api/internal/eventbus"
	"github.com/imagerelay/api/internal/handlers"
	"github.com/imagerelay/api/internal/imagegen"
	"github.com/imagerelay/api/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/imagerelay/api/docs" // Swagger docs
)

// Generation endpoints. The functions path matches the original deployment
// so existing clients keep working.
const (
	FunctionsPath = "/functions/v1/generate-image"
	APIPath       = "/api/v1/images/generate"
)

// Options wires the router's dependencies.
type Options struct {
	Relay   *imagegen.Relay
	Events  eventbus.Publisher
	Auth    middleware.AuthConfig
	Logger  *zap.Logger
	Version string
	Metrics prometheus.Gatherer
	Release bool
	Swagger bool
}

// NewRouter builds the gin engine serving the relay.
func NewRouter(opts Options) *gin.Engine {
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(opts.Logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	if opts.Swagger {
		router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{})))
	}

	healthHandler := handlers.NewHealthHandler(opts.Relay.Registry(), opts.Version)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)

	generationHandler := handlers.NewGenerationHandler(opts.Relay, opts.Events, opts.Logger)
	providerHandler := handlers.NewProviderHandler(opts.Relay.Registry())

	auth := middleware.Auth(opts.Auth, opts.Logger)
	for _, path := range []string{FunctionsPath, APIPath} {
		router.OPTIONS(path, generationHandler.Preflight)
		router.POST(path, auth, generationHandler.GenerateImage)
	}

	v1 := router.Group("/api/v1")
	v1.Use(auth)
	{
		v1.GET("/providers", providerHandler.ListProviders)
	}

	return router
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}
