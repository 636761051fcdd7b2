package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/router"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// pipedStdin makes GetPassword read from the app reader as if stdin were a pipe.
func pipedStdin(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

type fakeSession struct {
	authed bool
	user   *models.User

	loginRes    models.Result
	registerRes models.Result
	fetchErr    error
	refreshErr  error

	lastLogin    models.LoginData
	lastRegister models.RegisterData
	fetchCalls   int
	refreshCalls int
	logoutCalls  int
}

func (f *fakeSession) Login(_ context.Context, d models.LoginData) models.Result {
	f.lastLogin = d
	if f.loginRes.Success {
		f.authed = true
		f.user = &models.User{ID: 1, Name: "Ana", Email: d.Email}
	}
	return f.loginRes
}

func (f *fakeSession) Register(_ context.Context, d models.RegisterData) models.Result {
	f.lastRegister = d
	if f.registerRes.Success {
		f.authed = true
		f.user = &models.User{ID: 2, Name: d.Name, Email: d.Email}
	}
	return f.registerRes
}

func (f *fakeSession) FetchUser(context.Context) error {
	f.fetchCalls++
	if f.fetchErr != nil {
		f.authed, f.user = false, nil
	}
	return f.fetchErr
}

func (f *fakeSession) Refresh(context.Context) error {
	f.refreshCalls++
	if f.refreshErr != nil {
		f.authed, f.user = false, nil
	}
	return f.refreshErr
}

func (f *fakeSession) Logout(context.Context) {
	f.logoutCalls++
	f.authed, f.user = false, nil
}

func (f *fakeSession) IsAuthenticated() bool     { return f.authed }
func (f *fakeSession) CurrentUser() *models.User { return f.user }

type fakeProducts struct {
	items      []*models.Product
	pagination models.Pagination
	listErr    error
	byID       map[int64]*models.Product

	createRes models.Result
	updateRes models.Result
	deleteRes models.Result

	fetchedPage int
	created     *models.ProductData
	updatedID   int64
	updated     *models.ProductData
	deletedID   int64
}

func (f *fakeProducts) FetchProducts(_ context.Context, page int) error {
	f.fetchedPage = page
	return f.listErr
}

func (f *fakeProducts) FetchProduct(_ context.Context, id int64) *models.Product {
	return f.byID[id]
}

func (f *fakeProducts) CreateProduct(_ context.Context, d models.ProductData) models.Result {
	f.created = &d
	return f.createRes
}

func (f *fakeProducts) UpdateProduct(_ context.Context, id int64, d models.ProductData) models.Result {
	f.updatedID, f.updated = id, &d
	return f.updateRes
}

func (f *fakeProducts) DeleteProduct(_ context.Context, id int64) models.Result {
	f.deletedID = id
	return f.deleteRes
}

func (f *fakeProducts) Products() []*models.Product     { return f.items }
func (f *fakeProducts) Pagination() models.Pagination { return f.pagination }

func newTestApp(s *fakeSession, p *fakeProducts, in *bufio.Reader) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		session:  s,
		products: p,
		router:   router.New(s, router.DefaultRoutes()),
		reader:   in,
		out:      out,
		log:      logging.Nop(),
	}, out
}
