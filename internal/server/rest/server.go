// Package rest exposes the JSON API under /api over net/http.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/services"
)

// AuthService is the subset of services.AuthService used by the handlers.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.TokenResponse, error)
	Login(ctx context.Context, in services.LoginInput) (*models.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, token string) (*models.TokenResponse, error)
}

// ProductService is the subset of services.ProductService used by the handlers.
type ProductService interface {
	List(ctx context.Context, page int) (*models.ProductPage, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, in services.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int64, in services.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type HTTPServer struct {
	address         string
	logger          logging.Logger
	auth            AuthService
	products        ProductService
	shutdownTimeout time.Duration
}

func NewHTTPServer(addr string, l logging.Logger, as AuthService, ps ProductService, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         addr,
		logger:          l.With("module", "http_server"),
		auth:            as,
		products:        ps,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler builds the routed handler with request logging and panic recovery.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	mux.Handle("GET /api/users/me", s.requireAuth(http.HandlerFunc(s.handleMe)))

	mux.Handle("GET /api/products", s.requireAuth(http.HandlerFunc(s.handleListProducts)))
	mux.Handle("POST /api/products", s.requireAuth(http.HandlerFunc(s.handleCreateProduct)))
	mux.Handle("GET /api/products/{id}", s.requireAuth(http.HandlerFunc(s.handleGetProduct)))
	mux.Handle("PUT /api/products/{id}", s.requireAuth(http.HandlerFunc(s.handleUpdateProduct)))
	mux.Handle("DELETE /api/products/{id}", s.requireAuth(http.HandlerFunc(s.handleDeleteProduct)))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, messageBody{Message: "Not Found."})
	})

	return s.logRequests(s.recoverPanics(mux))
}

// Run serves until ctx is cancelled, then drains connections for at most the
// shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
