package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/api"
	"fxconvert/internal/config"
	"fxconvert/internal/conversion"
	"fxconvert/internal/conversion/handler"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and store monitor
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Amounts and rates serialize as JSON numbers, matching the public API.
	decimal.MarshalJSONWithoutQuotes = true

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, initial reads)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Store: postgres repository, optionally behind a TTL record cache
	repo := postgres.NewRateRecordRepository(pool, appCfg.Store.Table)
	var store adapters.RateStore = repo
	if appCfg.Cache.MaxItems > 0 {
		cachedStore, cacheErr := cache.NewCachedRateStore(
			repo,
			appCfg.Cache.MaxItems,
			time.Duration(appCfg.Cache.TTLSeconds)*time.Second,
		)
		if cacheErr != nil {
			logrus.WithError(cacheErr).Error("Failed to create record cache")
			return cacheErr
		}
		defer cachedStore.Close()
		store = cachedStore
		logrus.Info("✅ Record cache enabled")
	}

	// Core
	resolver := conversion.NewResolver(store, appCfg.Store.CanonicalBase)
	conversionService := conversion.NewService(resolver)

	// Store health monitor
	monitor := conversion.NewMonitor(
		repo,
		store,
		appCfg.Store.CanonicalBase,
		time.Duration(appCfg.Monitor.IntervalSeconds)*time.Second,
	)
	// Ensure monitor stops before DB pool closes
	defer func() {
		if shutDownErr := monitor.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Monitor shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := monitor.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start store monitor")
		return startErr
	}
	logrus.Info("✅ Store monitor activation successful")

	// Handlers and router
	conversionHandler := handler.NewConversionHandler(conversionService, store, appCfg.Store.CanonicalBase)
	router := api.NewRouter(conversionHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop the monitor and in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
