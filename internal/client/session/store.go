// Package session holds the client's authentication state: the bearer token
// and the cached user, mirrored to durable storage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/router"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrIncompleteSession is returned when the backend answers without a
	// token or without a user.
	ErrIncompleteSession = errors.New("incomplete session in response")
)

const (
	loginFailed        = "Login failed."
	registrationFailed = "Registration failed."
)

// AuthAPI is the part of the backend the session talks to.
type AuthAPI interface {
	Register(ctx context.Context, data models.RegisterData) (*models.TokenResponse, error)
	Login(ctx context.Context, data models.LoginData) (*models.TokenResponse, error)
	Refresh(ctx context.Context) (*models.TokenResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
}

// Persistence is the durable copy of the session.
type Persistence interface {
	Load(ctx context.Context) (token, user string, err error)
	Save(ctx context.Context, token, user string) error
	SaveUser(ctx context.Context, user string) error
	Clear(ctx context.Context) error
}

type Navigator interface {
	Push(target string) (router.Route, error)
}

// Store is Anonymous while token is empty and Authenticated otherwise.
// The mutex is never held across a backend call, so the 401 hook may call
// Expire while a request is in flight.
type Store struct {
	mu      sync.RWMutex
	token   string
	user    *models.User
	loading bool

	api     AuthAPI
	storage Persistence
	nav     Navigator
	log     logging.Logger
}

func NewStore(a AuthAPI, storage Persistence, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{api: a, storage: storage, log: log}
}

// SetNavigator binds the router used for the post-logout redirect.
func (s *Store) SetNavigator(nav Navigator) {
	s.mu.Lock()
	s.nav = nav
	s.mu.Unlock()
}

// Initialize restores the session from storage without calling the backend.
// A token without a user (or the reverse) is discarded.
func (s *Store) Initialize(ctx context.Context) {
	token, rawUser, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load stored session", "error", err)
		return
	}

	if token != "" && rawUser != "" {
		var u *models.User
		if err := json.Unmarshal([]byte(rawUser), &u); err == nil && u != nil {
			s.mu.Lock()
			s.token, s.user = token, u
			s.mu.Unlock()
			return
		}
		s.log.Warn(ctx, "stored user is not a valid user object, discarding session")
	}

	if token != "" || rawUser != "" {
		if err := s.storage.Clear(ctx); err != nil {
			s.log.Warn(ctx, "failed to clear partial session", "error", err)
		}
	}
}

func (s *Store) Login(ctx context.Context, data models.LoginData) models.Result {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Login(ctx, data)
	if err != nil {
		s.log.Debug(ctx, "login failed", "error", err)
		return models.Failure(api.FieldErrorsOr(err, loginFailed))
	}

	if err := s.establish(ctx, resp); err != nil {
		s.log.Warn(ctx, "login response rejected", "error", err)
		return models.Failure(map[string][]string{models.GeneralErrorKey: {loginFailed}})
	}
	return models.Result{Success: true}
}

func (s *Store) Register(ctx context.Context, data models.RegisterData) models.Result {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Register(ctx, data)
	if err != nil {
		s.log.Debug(ctx, "registration failed", "error", err)
		return models.Failure(api.FieldErrorsOr(err, registrationFailed))
	}

	if err := s.establish(ctx, resp); err != nil {
		s.log.Warn(ctx, "registration response rejected", "error", err)
		return models.Failure(map[string][]string{models.GeneralErrorKey: {registrationFailed}})
	}
	return models.Result{Success: true}
}

// FetchUser refreshes the cached user. Any failure logs the session out.
func (s *Store) FetchUser(ctx context.Context) error {
	if s.Token() == "" {
		return nil
	}

	u, err := s.api.Me(ctx)
	if err == nil && u == nil {
		err = ErrIncompleteSession
	}
	if err != nil {
		s.Logout(ctx)
		return err
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()

	if raw, err := json.Marshal(u); err == nil {
		if err := s.storage.SaveUser(ctx, string(raw)); err != nil {
			s.log.Warn(ctx, "failed to persist user", "error", err)
		}
	}
	return nil
}

// Refresh swaps the token for a new one. Any failure logs the session out.
func (s *Store) Refresh(ctx context.Context) error {
	if s.Token() == "" {
		return ErrNotAuthenticated
	}

	resp, err := s.api.Refresh(ctx)
	if err != nil {
		s.Logout(ctx)
		return err
	}

	if err := s.establish(ctx, resp); err != nil {
		s.Logout(ctx)
		return err
	}
	return nil
}

// Logout revokes the token on the backend on a best-effort basis, then
// drops the session and shows the login view.
func (s *Store) Logout(ctx context.Context) {
	if s.Token() != "" {
		if err := s.api.Logout(ctx); err != nil {
			s.log.Warn(ctx, "backend logout failed", "error", err)
		}
	}
	s.Expire(ctx)
}

// Expire drops the session without contacting the backend. It is bound to
// 401 responses.
func (s *Store) Expire(ctx context.Context) {
	s.mu.Lock()
	s.token, s.user = "", nil
	nav := s.nav
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear stored session", "error", err)
	}

	if nav != nil {
		if _, err := nav.Push(router.Login); err != nil {
			s.log.Warn(ctx, "redirect to login failed", "error", err)
		}
	}
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns a copy of the cached user, nil when anonymous.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// establish sets the session in memory and persists token and user together.
// A response missing either is rejected and leaves the session untouched.
// A storage failure leaves the in-memory session usable.
func (s *Store) establish(ctx context.Context, resp *models.TokenResponse) error {
	if resp == nil || resp.AccessToken == "" || resp.User == nil {
		return ErrIncompleteSession
	}

	s.mu.Lock()
	s.token, s.user = resp.AccessToken, resp.User
	s.mu.Unlock()

	raw, err := json.Marshal(resp.User)
	if err != nil {
		s.log.Warn(ctx, "failed to encode user", "error", err)
		return nil
	}
	if err := s.storage.Save(ctx, resp.AccessToken, string(raw)); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}
	return nil
}
