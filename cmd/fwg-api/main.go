// Package main wires together the intake API service.
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
	"time"

	"go.uber.org/zap"

	"github.com/MaxiCo1/fwg-api-test/internal/api"
	"github.com/MaxiCo1/fwg-api-test/internal/clock/system"
	"github.com/MaxiCo1/fwg-api-test/internal/config"
	"github.com/MaxiCo1/fwg-api-test/internal/credentials"
	"github.com/MaxiCo1/fwg-api-test/internal/intake"
	"github.com/MaxiCo1/fwg-api-test/internal/logging"
	"github.com/MaxiCo1/fwg-api-test/internal/origin"
	"github.com/MaxiCo1/fwg-api-test/internal/sheetstore"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Development())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connect := func(ctx context.Context) (intake.Store, error) {
		cred, err := credentials.Normalize(cfg.Google.PrivateKey, cfg.Google.ClientEmail)
		if err != nil {
			return nil, err
		}
		store, err := sheetstore.New(ctx, cred, sheetstore.Options{
			SpreadsheetID: cfg.Google.SpreadsheetID,
			SheetName:     cfg.Google.SheetName,
			AppendTimeout: cfg.AppendTimeout(),
			HealthTimeout: cfg.HealthTimeout(),
		})
		if err != nil {
			return nil, err
		}
		if err := store.Probe(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}

	pipeline := intake.NewPipeline(connect, system.New(), cfg.Mode, logger.Named("pipeline"))
	policy := origin.New(cfg.CORS.AllowedOrigins, cfg.Development())
	apiServer := api.NewServer(pipeline, policy, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port), zap.String("mode", cfg.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
