// Package server wires the configured stores, services and transport
// together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/auth"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobstore"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/server/httpapi"
	"github.com/dmitrijs2005/filesmanager/internal/server/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/dmitrijs2005/filesmanager/internal/server/sessions"
	"github.com/dmitrijs2005/filesmanager/internal/server/worker"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

const (
	shutdownTimeout = 5 * time.Second
	consumerGroup   = "filesmanager"
)

type App struct {
	config *config.Config
	logger logging.Logger

	repos    repomanager.RepositoryManager
	sessions sessions.Store
	blobs    blobstore.Store
	queue    *queue.Queue

	handler http.Handler

	closers []io.Closer
}

// NewApp builds every component selected by c. Resources acquired before a
// failure are released.
func NewApp(ctx context.Context, c *config.Config) (_ *App, err error) {
	logger, err := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger}
	defer func() {
		if err != nil {
			_ = app.Close()
		}
	}()

	if app.repos, err = app.initRepositories(ctx); err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if app.sessions, err = app.initSessions(); err != nil {
		return nil, fmt.Errorf("session store init error: %w", err)
	}
	if app.blobs, err = app.initBlobs(ctx); err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}
	if app.queue, err = app.initQueue(); err != nil {
		return nil, fmt.Errorf("queue init error: %w", err)
	}

	hasher, err := auth.NewHasher(c.PasswordHasher)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(app.repos.Users(), app.sessions, hasher, logger).WithSessionTTL(c.SessionTTL)
	us := services.NewUserService(app.repos, app.sessions, hasher, app.queue, logger)
	fs := services.NewFileService(app.repos, app.blobs, app.queue, c.MaxUploadBytes, logger)

	if c.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	app.handler = httpapi.NewServer(httpapi.Options{
		MaxUploadBytes: c.MaxUploadBytes,
		CORSOrigins:    c.CORSOrigins,
	}, as, us, fs, logger).Handler()

	return app, nil
}

func (app *App) initRepositories(ctx context.Context) (repomanager.RepositoryManager, error) {
	if app.config.MetadataBackend == config.BackendMemory {
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	m, err := repomanager.NewPostgresRepositoryManager(app.config.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, m)

	if err := m.RunMigrations(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (app *App) initSessions() (sessions.Store, error) {
	var (
		s   sessions.Store
		err error
	)
	switch app.config.SessionBackend {
	case config.BackendRedis:
		s = sessions.NewRedisStore(sessions.RedisConfig{
			Addrs:    strings.Join(app.config.RedisAddrs, ","),
			Password: app.config.RedisPassword,
		})
	case config.BackendBadger:
		s, err = sessions.NewBadgerStore(app.config.BadgerPath)
	default:
		s = sessions.NewMemoryStore()
	}
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, s)
	return s, nil
}

func (app *App) initBlobs(ctx context.Context) (blobstore.Store, error) {
	if app.config.BlobBackend == config.BackendS3 {
		return blobstore.NewS3Store(ctx, blobstore.S3Config{
			Region:       app.config.S3Region,
			AccessKey:    app.config.S3RootUser,
			SecretKey:    app.config.S3RootPassword,
			Bucket:       app.config.S3Bucket,
			BaseEndpoint: app.config.S3BaseEndpoint,
			Prefix:       app.config.S3Prefix,
		})
	}
	return blobstore.NewLocalStore(afero.NewOsFs(), app.config.FolderPath)
}

func (app *App) initQueue() (*queue.Queue, error) {
	if app.config.QueueBackend != config.BackendPostgres {
		q := queue.NewMemoryQueue(app.logger)
		app.closers = append(app.closers, q)
		return q, nil
	}

	db, err := app.queueDB()
	if err != nil {
		return nil, err
	}
	q, err := queue.NewSQLQueue(db, consumerGroup, app.logger)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, q)
	return q, nil
}

// queueDB shares the metadata pool when metadata lives in Postgres too.
func (app *App) queueDB() (*sql.DB, error) {
	if pg, ok := app.repos.(*repomanager.PostgresRepositoryManager); ok {
		return pg.DB(), nil
	}
	db, err := sql.Open("pgx", app.config.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, db)
	return db, nil
}

// Handler exposes the HTTP routes.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newWorker() (*worker.Worker, error) {
	return worker.New(app.repos, app.blobs, app.queue.Subscriber(), app.logger)
}

func (app *App) runWorker(ctx context.Context, w *worker.Worker, cancelFunc context.CancelFunc) {
	if err := w.Run(ctx); err != nil {
		app.logger.Error(ctx, "worker stopped", "error", err)
		cancelFunc()
	}
}

// Run serves HTTP, and the thumbnail worker when EmbeddedWorker is set,
// until ctx is done or a shutdown signal arrives. Resources are released
// before Run returns.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.HTTPAddr)
	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup

	var w *worker.Worker
	if app.config.EmbeddedWorker {
		var err error
		if w, err = app.newWorker(); err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runWorker(ctx, w, cancelFunc)
		}()
	}

	var serveErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server stopped", "error", err)
			serveErr = err
			cancelFunc()
		}
	}()

	<-ctx.Done()
	app.logger.Info(context.Background(), "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown failed", "error", err)
	}
	if w != nil {
		_ = w.Close()
	}

	wg.Wait()
	return serveErr
}

// RunWorker runs only the thumbnail worker until ctx is done or a shutdown
// signal arrives.
func (app *App) RunWorker(ctx context.Context) error {
	defer app.Close()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	if app.config.QueueBackend != config.BackendPostgres {
		app.logger.Warn(ctx, "memory queue only receives messages published by this process")
	}
	app.initSignalHandler(cancelFunc)

	w, err := app.newWorker()
	if err != nil {
		return err
	}
	app.logger.Info(ctx, "Starting worker...")
	return w.Run(ctx)
}

// Close releases stores in reverse order of creation.
func (app *App) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}
