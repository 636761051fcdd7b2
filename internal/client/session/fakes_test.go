package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/router"
)

var errBoom = errors.New("boom")

type fakeAPI struct {
	loginResp    *models.TokenResponse
	loginErr     error
	registerResp *models.TokenResponse
	registerErr  error
	refreshResp  *models.TokenResponse
	refreshErr   error
	meResp       *models.User
	meErr        error
	logoutErr    error

	logoutCalls int
	lastLogin   models.LoginData
}

func (f *fakeAPI) Register(_ context.Context, _ models.RegisterData) (*models.TokenResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeAPI) Login(_ context.Context, d models.LoginData) (*models.TokenResponse, error) {
	f.lastLogin = d
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Refresh(context.Context) (*models.TokenResponse, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) Me(context.Context) (*models.User, error) {
	return f.meResp, f.meErr
}

type memStorage struct {
	mu       sync.Mutex
	token    string
	user     string
	loadErr  error
	saveErr  error
	clears   int
	saves    int
	userOnly int
}

func (m *memStorage) Load(context.Context) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.user, m.loadErr
}

func (m *memStorage) Save(_ context.Context, token, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.token, m.user = token, user
	return nil
}

func (m *memStorage) SaveUser(_ context.Context, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userOnly++
	m.user = user
	return nil
}

func (m *memStorage) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.token, m.user = "", ""
	return nil
}

type recordingNav struct {
	pushes []string
}

func (r *recordingNav) Push(target string) (router.Route, error) {
	r.pushes = append(r.pushes, target)
	return router.Route{Name: target}, nil
}

func tokenFor(token string, id int64, email string) *models.TokenResponse {
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        &models.User{ID: id, Name: "Ana", Email: email},
	}
}

func loginData(email, password string) models.LoginData {
	return models.LoginData{Email: email, Password: password}
}
