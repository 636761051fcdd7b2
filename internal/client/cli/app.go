package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/products"
	"github.com/dmitrijs2005/storefront/internal/client/router"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// SessionStore is the part of session.Store the views use.
type SessionStore interface {
	Login(ctx context.Context, data models.LoginData) models.Result
	Register(ctx context.Context, data models.RegisterData) models.Result
	FetchUser(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context)
	IsAuthenticated() bool
	CurrentUser() *models.User
}

// ProductStore is the part of products.Store the views use.
type ProductStore interface {
	FetchProducts(ctx context.Context, page int) error
	FetchProduct(ctx context.Context, id int64) *models.Product
	CreateProduct(ctx context.Context, data models.ProductData) models.Result
	UpdateProduct(ctx context.Context, id int64, data models.ProductData) models.Result
	DeleteProduct(ctx context.Context, id int64) models.Result
	Products() []*models.Product
	Pagination() models.Pagination
}

type Navigator interface {
	Push(target string) (router.Route, error)
	Current() router.Route
}

type App struct {
	session  SessionStore
	products ProductStore
	router   Navigator
	reader   *bufio.Reader
	out      io.Writer
	log      logging.Logger
	db       *sql.DB

	health         healthChecker
	healthConn     io.Closer
	healthInterval time.Duration
	modeMu         sync.Mutex
	mode           Mode
}

// NewApp opens local storage, builds the API pipeline and the stores, binds
// the 401 hook to the session and restores any stored session.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewText(os.Stderr, c.LogLevel)

	db, err := storage.OpenDB(ctx, c.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	pipeline := api.NewPipeline(c.ServerBaseURL, &http.Client{Timeout: c.RequestTimeout}).
		BeforeSend(api.JSONHeaders())
	client := api.NewClient(pipeline)

	ss := session.NewStore(client, storage.NewSessionStorage(db), log)
	r := router.New(ss, router.DefaultRoutes())
	ss.SetNavigator(r)

	pipeline.BeforeSend(api.BearerToken(ss)).
		AfterReceive(api.OnUnauthorized(ss.Expire))

	ss.Initialize(ctx)

	app := &App{
		session:        ss,
		products:       products.NewStore(client, log),
		router:         r,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		log:            log,
		db:             db,
		healthInterval: c.HealthCheckInterval,
	}

	if c.HealthAddr != "" {
		h, err := dialHealth(c.HealthAddr)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		app.health, app.healthConn = h, h
	}

	return app, nil
}

// Run shows the starting view and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to storefront (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.healthInterval)

	if err := a.open(ctx, router.Home); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() error {
	var errs []error
	if a.healthConn != nil {
		errs = append(errs, a.healthConn.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus renders "(email /path mode)" for the prompt.
func (a *App) getStatus() string {
	s := ""
	if u := a.session.CurrentUser(); u != nil {
		s = u.Email + " "
	}
	s += a.router.Current().Path
	if m := a.currentMode(); m != "" {
		s = strings.TrimSpace(s + " " + string(m))
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
