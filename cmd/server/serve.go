package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/agenthands/cograph/internal/debounce"
	"github.com/agenthands/cograph/internal/errors"
	"github.com/agenthands/cograph/internal/ingest"
	"github.com/agenthands/cograph/internal/logger"
	"github.com/agenthands/cograph/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve graphs over HTTP, reloading the records file on change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	log := logger.Named("main")
	gin.SetMode(gin.ReleaseMode)

	dataset := ingest.NewDataset(cfg.Data.RecordsPath)
	if _, err := dataset.Load(); err != nil {
		return errors.Wrap(err, "initial load")
	}

	var catalog ingest.Catalog
	if cfg.Data.CatalogPath != "" {
		c, err := ingest.LoadCatalog(cfg.Data.CatalogPath)
		if err != nil {
			log.Warnw("Code catalog unavailable, serving bare codes",
				logger.FieldFile, cfg.Data.CatalogPath,
				logger.FieldError, err)
		} else {
			catalog = c
		}
	}

	srv, err := server.NewServer(cfg, dataset, catalog)
	if err != nil {
		return err
	}

	if cfg.Data.Watch {
		window := time.Duration(cfg.Data.DebounceMS) * time.Millisecond
		watcher, err := ingest.NewWatcher(dataset, debounce.New(window))
		if err != nil {
			return err
		}
		watcher.OnReload(srv.Invalidate)
		watcher.Start()
		defer func() {
			if err := watcher.Stop(); err != nil {
				log.Warnw("Watcher stop failed", logger.FieldError, err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.SetupRouter(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Starting server", logger.FieldAddress, httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infow("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
