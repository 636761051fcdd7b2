// Package products keeps the client's view of the product catalogue.
package products

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

const (
	createFailed = "Failed to create product"
	updateFailed = "Failed to update product"
	deleteFailed = "Failed to delete product"
)

type ProductAPI interface {
	ListProducts(ctx context.Context, page int) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, data models.ProductData) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, data models.ProductData) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type Store struct {
	mu         sync.RWMutex
	products   []*models.Product
	current    *models.Product
	pagination models.Pagination

	api ProductAPI
	log logging.Logger
}

func NewStore(a ProductAPI, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		api:        a,
		log:        log,
		pagination: models.Pagination{CurrentPage: 1, LastPage: 1, PerPage: 10},
	}
}

// FetchProducts loads one page. On failure the previous page is kept.
func (s *Store) FetchProducts(ctx context.Context, page int) error {
	p, err := s.api.ListProducts(ctx, page)
	if err != nil {
		s.log.Warn(ctx, "failed to fetch products", "page", page, "error", err)
		return err
	}

	s.mu.Lock()
	s.products = p.Data
	s.pagination = models.Pagination{
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		PerPage:     p.PerPage,
		Total:       p.Total,
	}
	s.mu.Unlock()
	return nil
}

// FetchProduct loads one product into Current, nil on failure.
func (s *Store) FetchProduct(ctx context.Context, id int64) *models.Product {
	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "failed to fetch product", "id", id, "error", err)
		return nil
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return p
}

// CreateProduct puts the new product at the top of the loaded page.
func (s *Store) CreateProduct(ctx context.Context, data models.ProductData) models.Result {
	p, err := s.api.CreateProduct(ctx, data)
	if err != nil {
		return models.Failure(api.FieldErrorsOr(err, createFailed))
	}

	s.mu.Lock()
	s.products = append([]*models.Product{p}, s.products...)
	s.mu.Unlock()
	return models.Result{Success: true}
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, data models.ProductData) models.Result {
	p, err := s.api.UpdateProduct(ctx, id, data)
	if err != nil {
		return models.Failure(api.FieldErrorsOr(err, updateFailed))
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.products[i] = p
	}
	if s.current != nil && s.current.ID == id {
		s.current = p
	}
	s.mu.Unlock()
	return models.Result{Success: true}
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) models.Result {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.log.Debug(ctx, "failed to delete product", "id", id, "error", err)
		return models.Failure(map[string][]string{models.GeneralErrorKey: {deleteFailed}})
	}

	s.mu.Lock()
	s.products = slices.DeleteFunc(s.products, func(p *models.Product) bool { return p.ID == id })
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()
	return models.Result{Success: true}
}

// Products returns a copy of the loaded page.
func (s *Store) Products() []*models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Store) Current() *models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Pagination() models.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.products, func(p *models.Product) bool { return p.ID == id })
}
