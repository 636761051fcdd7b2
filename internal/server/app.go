// Package server wires configuration, storage, services and transports into
// the running API process and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/blacklist"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storefront/internal/server/rest"
	"github.com/dmitrijs2005/storefront/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/storefront/internal/server/grpc"
)

const purgeInterval = time.Hour

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	rdb            *redis.Client
	revoked        blacklist.Store
	authService    *services.AuthService
	productService *services.ProductService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	app.revoked, app.rdb, err = newRevocationStore(ctx, c.RedisURL, db, rm)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	tokens := auth.NewManager([]byte(c.SecretKey), c.AccessTokenTTL, c.RefreshWindow)
	app.authService = services.NewAuthService(db, rm, tokens, app.revoked, c.BcryptCost, logger.With("module", "auth"))
	app.productService = services.NewProductService(db, rm)

	return app, nil
}

// newRevocationStore picks Redis when redisURL is set and PostgreSQL otherwise.
func newRevocationStore(ctx context.Context, redisURL string, db *sql.DB, rm repomanager.RepositoryManager) (blacklist.Store, *redis.Client, error) {
	if redisURL == "" {
		return blacklist.NewPostgresStore(rm.RevokedTokens(db)), nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return blacklist.NewRedisStore(rdb), rdb, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewHTTPServer(app.config.HTTPAddr, app.logger, app.authService, app.productService, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCHealthAddr, app.logger, app.db, 0)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeRevocations drops expired rows from the PostgreSQL revocation list.
// Redis expires its keys by itself.
func (app *App) purgeRevocations(ctx context.Context) {
	pg, ok := app.revoked.(*blacklist.PostgresStore)
	if !ok {
		return
	}

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := pg.Purge(ctx)
			if err != nil {
				app.logger.Warn(ctx, "purge revoked tokens", "error", err)
				continue
			}
			app.logger.Debug(ctx, "purged revoked tokens", "count", n)
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCHealthAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.purgeRevocations(ctx)
	}()

	wg.Wait()

	app.close(context.Background())
}

func (app *App) close(ctx context.Context) {
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Warn(ctx, "redis close", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
