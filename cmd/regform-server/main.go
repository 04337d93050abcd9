package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-regform/internal/config"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitSetupError      = 2
	ExitHTTPServerError = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to config file")
	envFile := flag.String("env-file", ".env", "Path to a .env file (ignored when missing)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("regform-server %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	if _, err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}

	logger := config.SetupLogger(cfg)
	logger.Info("starting regform-server",
		"version", Version,
		"config", *configPath,
	)

	handler, err := buildHandler(cfg, logger)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		return ExitSetupError
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "address", cfg.Server.Address())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("HTTP server failed", "error", err)
		return ExitHTTPServerError
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return ExitHTTPServerError
	}
	logger.Info("server stopped")
	return ExitSuccess
}
