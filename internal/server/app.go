// Package server wires the CoinKeeper server together: it builds the logger,
// metrics and storage backend from config, runs migrations, and serves the
// account service over gRPC and HTTP until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/server/config"
	"github.com/dmitrijs2005/coinkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/coinkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/coinkeeper/internal/server/grpc"
	hs "github.com/dmitrijs2005/coinkeeper/internal/server/http"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	metrics  *metrics.Metrics
	repos    repomanager.RepositoryManager
	accounts *services.AccountService
}

// NewApp builds the storage backend selected by c and the services on top of
// it. Postgres migrations are applied here, before any listener is opened.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewJSON(os.Stdout, c.LogLevel)
	mt := metrics.New()

	repos, err := openRepositories(ctx, c)
	if err != nil {
		return nil, err
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	logger.Info(ctx, "Storage ready", "storage", c.Storage, "redis_sessions", c.RedisURL != "")

	return &App{
		config:   c,
		logger:   logger,
		metrics:  mt,
		repos:    repos,
		accounts: services.NewAccountService(repos, logger, mt),
	}, nil
}

func openRepositories(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.Storage == config.StorageMemory {
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rdb, err := repomanager.OpenRedis(ctx, c.RedisURL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	var opts []repomanager.Option
	if rdb != nil {
		opts = append(opts, repomanager.WithRedisSessions(rdb))
	}

	m, err := repomanager.NewPostgresRepositoryManager(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return m, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := hs.NewHandler(app.accounts, app.logger, app.metrics, app.config.Storage)
	s := hs.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, hs.NewRouter(h), app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a termination signal arrives, or one of
// the servers fails. The storage backend is closed on return.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(context.Background(), "storage close error", "error", err)
	}

	app.logger.Info(context.Background(), "App stopped")
}
