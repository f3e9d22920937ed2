// Package server initializes and runs the HTTP application server.
// It picks the storage backends per configuration, wires the identity gate,
// forecast client and cache together, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/forecast"
	"github.com/dmitrijs2005/socialbattery/internal/identity"
	"github.com/dmitrijs2005/socialbattery/internal/logging"
	"github.com/dmitrijs2005/socialbattery/internal/oracle"
	"github.com/dmitrijs2005/socialbattery/internal/server/config"
	"github.com/dmitrijs2005/socialbattery/internal/server/httpapi"
	"github.com/dmitrijs2005/socialbattery/internal/store"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	store    store.Store
	handlers *httpapi.Handlers
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	st, err := newStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	o, err := oracle.NewGeminiOracle(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("oracle init error: %w", err)
	}

	gate := identity.NewGate(st, o, logger)
	client := forecast.NewClient(o, logger)
	cache := forecast.NewCache(st)

	handlers := httpapi.NewHandlers(gate, client, cache, st,
		[]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration, logger)

	return &App{config: cfg, logger: logger, store: st, handlers: handlers}, nil
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreFile:
		return store.NewFileStore(cfg.DataDir, common.UsersBlobName+".json")
	case config.StoreSqlite:
		return store.NewSqliteStore("file:"+cfg.DataDir+"/socialbattery.db", common.UsersBlobName)
	case config.StorePostgres:
		return store.NewPostgresStore(cfg.DatabaseDSN)
	case config.StoreS3:
		return store.NewS3Store(ctx, store.S3Options{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			UsePathStyle: true,
		}, common.UsersBlobName+".json")
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until the context is cancelled or a signal arrives,
// then drains in-flight requests and closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: httpapi.NewRouter(app.handlers, app.config.CORSOrigin),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}

	return nil
}
