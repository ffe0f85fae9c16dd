package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unkn0wn-root/dictcache/internal/app"
	"github.com/unkn0wn-root/dictcache/internal/config"
	"github.com/unkn0wn-root/dictcache/internal/httpapi"
)

func main() {
	config.InitLogging()
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Unable to load configuration", err)
	}

	application, err := app.NewApp(appConfig)
	if err != nil {
		log.Fatal("Unable to initialize application: ", err)
	}
	defer application.Close()

	slog.Debug("Configuration",
		"DevMode", appConfig.DevMode,
		"LogLevel", appConfig.LogLevel,
		"Store", appConfig.Store,
		"Backend", appConfig.Backend,
		"Codec", appConfig.Codec,
		"HashKey", appConfig.HashKey,
	)

	if appConfig.WarmOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := application.Warm(ctx); err != nil {
			slog.Warn("Initial cache load failed; serving empty results until the next refresh", "error", err)
		}
		cancel()
	}

	router := http.NewServeMux()
	httpapi.AddApis(application.Dict, router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", appConfig.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Starting dictcached", "port", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-sigChan
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// application.Close() runs via defer and drains queued refreshes first.
	slog.Info("Shutdown complete")
}
