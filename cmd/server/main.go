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

	"instudio/internal/api"
	"instudio/pkg/factory"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appFactory, err := factory.NewFactory(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "application could not be initialised: %v\n", err)
		os.Exit(1)
	}

	log := appFactory.GetLogger()
	cfg := appFactory.GetConfig()

	log.Info("Starting instudio", map[string]interface{}{
		"env":       cfg.AppEnv,
		"db_driver": cfg.Database.Driver,
		"redis":     cfg.Redis.Enabled,
	})

	handler := api.NewRouter(
		appFactory.GetServices(),
		appFactory.GetTokenManager(),
		log,
		appFactory.GetProbes()...,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"port": cfg.Server.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down", map[string]interface{}{})
	case err := <-errCh:
		log.Error("HTTP server failed", map[string]interface{}{"error": err.Error()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server did not stop cleanly", map[string]interface{}{"error": err.Error()})
	}
	if err := appFactory.Close(shutdownCtx); err != nil {
		log.Error("Resources did not close cleanly", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Server stopped", map[string]interface{}{})
}
