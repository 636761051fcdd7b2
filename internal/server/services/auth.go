// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login and the lifecycle of the
// bearer tokens it hands out.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/cryptox"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/blacklist"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
)

const minPasswordLength = 6

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong
// password alike.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)

// RegisterInput is the registration form as submitted.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginInput is a transient credential; it is never persisted or logged.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService provides authentication-related operations:
// - Register: validate and create users, then sign them in
// - Login: verify credentials and mint a token
// - Authenticate: resolve a bearer token to its user
// - Logout / Refresh: revoke the presented token, minting a new one on refresh
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.Manager
	revoked     blacklist.Store
	bcryptCost  int
	log         logging.Logger
}

// NewAuthService constructs an AuthService using repositories, the token manager
// and a revocation list.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.Manager,
	revoked blacklist.Store, bcryptCost int, log logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		revoked:     revoked,
		bcryptCost:  bcryptCost,
		log:         log,
	}
}

// Register validates in, stores the user with a bcrypt hash and returns a token
// for it. Validation failures come back as *ValidationError and persist nothing.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.TokenResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	verr, err := s.validateRegistration(ctx, in)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return nil, verr
	}

	hash, err := cryptox.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{Name: in.Name, Email: in.Email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			verr := NewValidationError()
			verr.Add("email", "The email has already been taken.")
			return nil, verr
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return s.respondWithToken(user)
}

func (s *AuthService) validateRegistration(ctx context.Context, in RegisterInput) (*ValidationError, error) {
	verr := NewValidationError()

	if in.Name == "" {
		verr.Add("name", requiredMsg("name"))
	}

	switch {
	case in.Email == "":
		verr.Add("email", requiredMsg("email"))
	case !isEmail(in.Email):
		verr.Add("email", "The email field must be a valid email address.")
	default:
		exists, err := s.repomanager.Users(s.db).ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, fmt.Errorf("error checking email: %w", err)
		}
		if exists {
			verr.Add("email", "The email has already been taken.")
		}
	}

	if in.Password == "" {
		verr.Add("password", requiredMsg("password"))
	} else {
		if utf8.RuneCountInString(in.Password) < minPasswordLength {
			verr.Add("password", fmt.Sprintf("The password field must be at least %d characters.", minPasswordLength))
		}
		if cryptox.IsTooLong(in.Password) {
			verr.Add("password", fmt.Sprintf("The password field must not be greater than %d characters.", cryptox.MaxPasswordBytes))
		}
		if in.Password != in.PasswordConfirmation {
			verr.Add("password", "The password field confirmation does not match.")
		}
	}

	if verr.Empty() {
		return nil, nil
	}
	return verr, nil
}

// VerifyCredentials returns the user owning email when password matches.
// Unknown emails still pay for one bcrypt comparison.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.BurnPasswordCheck(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !cryptox.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login verifies the credential and, on success, returns a fresh token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.TokenResponse, error) {
	user, err := s.VerifyCredentials(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return s.respondWithToken(user)
}

// Authenticate resolves a bearer token to its user. The token must be
// correctly signed, unexpired and not revoked, and its user must still exist.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	if err := s.ensureNotRevoked(ctx, claims); err != nil {
		return nil, nil, err
	}

	user, err := s.loadUser(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// Logout revokes token until it could no longer be refreshed. A correctly
// signed token that is already expired or revoked is accepted silently.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ParseForRefresh(token)
	if errors.Is(err, common.ErrRefreshWindowClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	if _, err := s.revoked.Revoke(ctx, claims.ID, claims.UserID, s.tokens.RefreshDeadline(claims)); err != nil {
		return fmt.Errorf("%w: revoke: %v", common.ErrorInternal, err)
	}

	s.log.Info(ctx, "user logged out", "user_id", claims.UserID)
	return nil
}

// Refresh trades a token that is unexpired, or expired but still inside the
// refresh window, for a new one. The presented token is revoked first and
// only the caller that revoked it gets a replacement.
func (s *AuthService) Refresh(ctx context.Context, token string) (*models.TokenResponse, error) {
	claims, err := s.tokens.ParseForRefresh(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	first, err := s.revoked.Revoke(ctx, claims.ID, claims.UserID, s.tokens.RefreshDeadline(claims))
	if err != nil {
		return nil, fmt.Errorf("%w: revoke: %v", common.ErrorInternal, err)
	}
	if !first {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, common.ErrTokenRevoked)
	}

	user, err := s.loadUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.respondWithToken(user)
}

// --- helpers below ---

func (s *AuthService) ensureNotRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("%w: revocation lookup: %v", common.ErrorInternal, err)
	}
	if revoked {
		return fmt.Errorf("%w: %v", common.ErrorUnauthorized, common.ErrTokenRevoked)
	}
	return nil
}

func (s *AuthService) loadUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", common.ErrorUnauthorized, id)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}

func (s *AuthService) respondWithToken(user *models.User) (*models.TokenResponse, error) {
	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %v", common.ErrorInternal, err)
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   common.TokenType,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        user,
	}, nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
