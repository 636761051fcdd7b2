package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	productsrepo "github.com/dmitrijs2005/storefront/internal/server/repositories/products"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/revokedtokens"
	usersrepo "github.com/dmitrijs2005/storefront/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User

	createErr error
	getErr    error
	existsErr error
	// raceDuplicate makes Create report a unique violation although
	// ExistsByEmail said the email was free.
	raceDuplicate bool
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[int64]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.raceDuplicate {
		return nil, common.ErrorAlreadyExists
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, err := f.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUsersRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// --- products ---

type fakeProductsRepo struct {
	nextID int64
	rows    map[int64]*models.Product
	err     error
	offsets []int
}

func newFakeProductsRepo() *fakeProductsRepo {
	return &fakeProductsRepo{rows: map[int64]*models.Product{}}
}

func (f *fakeProductsRepo) sorted() []*models.Product {
	out := make([]*models.Product, 0, len(f.rows))
	for _, p := range f.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeProductsRepo) List(_ context.Context, limit, offset int) ([]*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.offsets = append(f.offsets, offset)
	all := f.sorted()
	if offset >= len(all) {
		return []*models.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeProductsRepo) Count(context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.rows), nil
}

func (f *fakeProductsRepo) Get(_ context.Context, id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProductsRepo) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	p.ID = f.nextID
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakeProductsRepo) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.rows[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakeProductsRepo) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

// --- revocation list ---

type fakeBlacklist struct {
	mu        sync.Mutex
	revoked   map[string]time.Time
	revokeErr error
	lookupErr error
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: map[string]time.Time{}}
}

func (f *fakeBlacklist) Revoke(_ context.Context, jti string, _ int64, until time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.revokeErr != nil {
		return false, f.revokeErr
	}
	if _, ok := f.revoked[jti]; ok {
		return false, nil
	}
	f.revoked[jti] = until
	return true, nil
}

func (f *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	_, ok := f.revoked[jti]
	return ok, nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakeProductsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.u }
func (m *fakeRepoManager) Products(dbx.DBTX) productsrepo.Repository    { return m.p }
func (m *fakeRepoManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository {
	return nil
}
