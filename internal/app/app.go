package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/harshajxn/PricePulse/internal/config"
	"github.com/harshajxn/PricePulse/internal/fetcher"
	"github.com/harshajxn/PricePulse/internal/handlers"
	"github.com/harshajxn/PricePulse/internal/router"
	"github.com/harshajxn/PricePulse/internal/scheduler"
	"github.com/harshajxn/PricePulse/internal/store"
	"github.com/harshajxn/PricePulse/internal/telemetry"
	"github.com/harshajxn/PricePulse/internal/tracker"
)

// App wires the pipeline together and owns its lifecycle.
type App struct {
	config    *config.Config
	logger    *zap.Logger
	telemetry *telemetry.Telemetry
	server    *http.Server
	scheduler *scheduler.Scheduler
	store     store.ProductStore
}

func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	tel, err := telemetry.NewTelemetry(logger)
	if err != nil {
		return nil, err
	}

	factory := store.NewDbProviderFactory(logger, tel)
	productStore, err := factory.CreateProvider(cfg.ProductDBConfig)
	if err != nil {
		return nil, err
	}

	amazonFetcher := fetcher.NewAmazonFetcher(cfg.FetchTimeout, cfg.UserAgent, cfg.AcceptLanguage, logger)
	productTracker := tracker.New(productStore, amazonFetcher, logger)
	sched := scheduler.New(productStore, productTracker, logger, tel.Meter, cfg.ScrapeInterval, cfg.FetchConcurrency)

	limiter := rate.NewLimiter(rate.Limit(cfg.RPSLimit), cfg.RPSBurst)
	handlerList := []router.Handler{
		handlers.NewHomeHandler(),
		handlers.NewTrackHandler(productTracker),
		handlers.NewHistoryHandler(productTracker),
	}

	appRouter := router.NewRouter(limiter, tel, logger, handlerList)
	server := appRouter.CreateServer(":" + cfg.Port)

	return &App{
		config:    cfg,
		logger:    logger,
		telemetry: tel,
		server:    server,
		scheduler: sched,
		store:     productStore,
	}, nil
}

// Run starts the server and scheduler and blocks until a shutdown signal.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schedCtx, cancelSched := context.WithCancel(context.Background())
	defer cancelSched()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.scheduler.Run(schedCtx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", zap.String("port", app.config.Port))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info("shutting down server...")
	case runErr = <-serverErr:
		app.logger.Error("server failed", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server forced to shutdown", zap.Error(err))
	}

	cancelSched()
	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error("failed to close product store", zap.Error(err))
	}

	app.logger.Info("server exited gracefully")
	return runErr
}
