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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/blogdex/internal/config"
	"github.com/kailas-cloud/blogdex/internal/metrics"
	"github.com/kailas-cloud/blogdex/internal/source"
	chiTransport "github.com/kailas-cloud/blogdex/internal/transport/chi"
	"github.com/kailas-cloud/blogdex/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/blogdex/internal/usecase/health"
	"github.com/kailas-cloud/blogdex/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the article collection and serve the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting blogdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source_driver", cfg.Source.Driver),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Register metrics explicitly (no init())
	metrics.Register()

	svc, h, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer h.Close()

	healthSvc := healthuc.New(svc, h.Pinger)
	server := chiTransport.NewServer(svc, healthSvc, limitsFromConfig(cfg.Index), logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// loadCatalog opens the configured source and loads the catalog from it
// within the readiness timeout.
func loadCatalog(ctx context.Context, cfg config.Config, logger *zap.Logger) (*catalog.Service, *source.Handle, error) {
	h, err := source.Open(ctx, cfg.Source, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening source: %w", err)
	}

	svc := catalog.New(h.Source, h.Driver, logger)

	loadCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Source.ReadinessTimeout)*time.Second)
	defer cancel()
	if err := svc.Load(loadCtx); err != nil {
		h.Close()
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	return svc, h, nil
}

func limitsFromConfig(c config.IndexConfig) chiTransport.Limits {
	return chiTransport.Limits{
		LatestCount:         c.LatestCount,
		DefaultRelatedLimit: c.DefaultRelatedLimit,
		MaxRelatedLimit:     c.MaxRelatedLimit,
		DefaultPageSize:     c.DefaultPageSize,
		MaxPageSize:         c.MaxPageSize,
	}
}
