package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/nivara-backend/internal/adapter/provider/openmeteo"
	"github.com/heartmarshall/nivara-backend/internal/config"
	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/service/assistant"
	"github.com/heartmarshall/nivara-backend/internal/service/scan"
	"github.com/heartmarshall/nivara-backend/internal/service/shop"
	"github.com/heartmarshall/nivara-backend/internal/service/weather"
	"github.com/heartmarshall/nivara-backend/internal/store"
	"github.com/heartmarshall/nivara-backend/internal/transport/middleware"
	"github.com/heartmarshall/nivara-backend/internal/transport/rest"
)

// Run wires storage, providers and services into the HTTP server and serves
// until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("ai_provider", cfg.AI.Provider),
	)

	backend, closeBackend, err := OpenBackend(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeBackend()

	registry, err := store.NewRegistry(backend, cfg.Storage.CacheSize, store.WithLogger(logger))
	if err != nil {
		return err
	}

	model, err := NewModel(ctx, cfg.AI, logger)
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	limiter := middleware.NewRateLimiter(clock, cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := newHandler(cfg, logger, backend, registry, model, clock, limiter)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("application stopped")
	return err
}

func newHandler(
	cfg *config.Config,
	logger *slog.Logger,
	backend Backend,
	registry *store.Registry,
	model Model,
	clock clockwork.Clock,
	limiter *middleware.RateLimiter,
) http.Handler {
	scanSvc := scan.NewService(logger, model, registry, cfg.AI.RequestTimeout, cfg.AI.MaxImageBytes)
	assistantSvc := assistant.NewService(logger, model)
	forecasts := openmeteo.NewProvider(cfg.Weather.BaseURL, cfg.Weather.Timeout, logger)
	weatherSvc := weather.NewService(logger, forecasts, weather.Location{
		Latitude:  cfg.Weather.DefaultLatitude,
		Longitude: cfg.Weather.DefaultLongitude,
	})
	shopSvc := shop.NewService(logger, registry, domain.DefaultCatalog(), clock, cfg.Shop.CheckoutDelay)

	router := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(backend, cfg.Storage.Driver, Version),
		State:     rest.NewStateHandler(registry, logger),
		Tracker:   rest.NewTrackerHandler(registry, logger),
		Community: rest.NewCommunityHandler(registry, logger),
		Shop:      rest.NewShopHandler(shopSvc, registry, logger),
		Scan:      rest.NewScanHandler(scanSvc, cfg.AI.MaxImageBytes, logger),
		Assistant: rest.NewAssistantHandler(assistantSvc, logger),
		Weather:   rest.NewWeatherHandler(weatherSvc, logger),
	}, limiter.Limit(cfg.RateLimit.AIRequestsPerMinute))

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)
}
