// Package server wires the application together: configuration, storage,
// outbound clients, the HTTP server, and graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ansapra/ansapra/internal/logging"
	"github.com/ansapra/ansapra/internal/server/config"
	"github.com/ansapra/ansapra/internal/server/filestore"
	"github.com/ansapra/ansapra/internal/server/httpapi"
	"github.com/ansapra/ansapra/internal/server/interpret"
	"github.com/ansapra/ansapra/internal/server/related"
	"github.com/ansapra/ansapra/internal/server/repositories/repomanager"
	"github.com/ansapra/ansapra/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	userService    *services.UserService
	readingService *services.ReadingService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var db *sql.DB
	var m repomanager.RepositoryManager

	if cfg.DatabaseDSN == "" {
		logger.Info(ctx, "No database DSN configured, using in-memory storage")
		m = repomanager.NewMemoryRepositoryManager()
	} else {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		m = repomanager.NewPostgresRepositoryManager()
		if err := m.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("file store init error: %w", err)
	}

	interpreter := interpret.NewClient(cfg.CompletionAPIKey, cfg.CompletionBaseURL,
		cfg.CompletionModel, cfg.CompletionTemperature, cfg.CompletionTimeout)
	searcher := related.NewClient(cfg.SearchAPIKey, cfg.SearchBaseURL, cfg.SearchTimeout)

	us := services.NewUserService(db, m, cfg)
	rs := services.NewReadingService(db, m, files, interpreter, searcher, logger)

	return &App{
		config:         cfg,
		logger:         logger,
		userService:    us,
		readingService: rs,
	}, nil
}

func newFileStore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	switch cfg.FileStoreBackend {
	case config.FileStoreS3:
		return filestore.NewS3Store(ctx, filestore.S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	default:
		return filestore.NewDiskStore(cfg.UploadDir)
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger,
		app.userService, app.readingService, app.config.MaxUploadBytes)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
