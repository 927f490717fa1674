// Package server initializes and runs daybookd: it opens the entry store,
// applies migrations, connects object storage and serves the gRPC API
// alongside the HTTP surface until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/server/config"
	"github.com/dmitrijs2005/daybook/internal/server/httpapi"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/daybook/internal/server/services"
	"github.com/dmitrijs2005/daybook/internal/server/storage"

	gs "github.com/dmitrijs2005/daybook/internal/server/grpc"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	entryService *services.EntryService
	assetService *services.AssetService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := storage.NewS3Storage(ctx, storage.Options{
		Region:        c.S3Region,
		AccessKey:     c.S3RootUser,
		SecretKey:     c.S3RootPassword,
		BaseEndpoint:  c.S3BaseEndpoint,
		UsePathStyle:  c.S3UsePathStyle,
		Buckets:       []string{c.ImageBucket, c.VideoBucket},
		PresignExpiry: c.PresignExpiry,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	es := services.NewEntryService(db, rm, c.MaxDay, logger)
	as := services.NewAssetService(store, logger)

	return &App{config: c, logger: logger, db: db, entryService: es, assetService: as}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.entryService, app.assetService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	h := httpapi.NewHandler(app.config.PromptsFile, app.config.ImageBucket, app.assetService, app.db, app.logger)

	if err := h.Run(ctx, app.config.EndpointAddrHTTP); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until both servers have stopped.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
