package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
)

const (
	// ProductsPerPage is the fixed page size of the product listing.
	ProductsPerPage = 10

	maxProductNameLength = 255
)

// ProductInput is the create/update form. Price stays nil when absent and
// NaN when present but not numeric, so both cases can be reported.
type ProductInput struct {
	Name  string
	Price *float64
}

// ProductService implements paginated listing and CRUD over the catalogue.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

// List returns the requested page, newest first. Pages below 1 are treated as 1.
func (s *ProductService) List(ctx context.Context, page int) (*models.ProductPage, error) {
	if page < 1 {
		page = 1
	}

	repo := s.repomanager.Products(s.db)

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting products: %w", err)
	}

	lastPage := (total + ProductsPerPage - 1) / ProductsPerPage
	if lastPage < 1 {
		lastPage = 1
	}

	// Pages past the end are empty; skipping the query also keeps the
	// offset from overflowing for huge page numbers.
	items := []*models.Product{}
	if page <= lastPage {
		items, err = repo.List(ctx, ProductsPerPage, (page-1)*ProductsPerPage)
		if err != nil {
			return nil, fmt.Errorf("error listing products: %w", err)
		}
	}

	return &models.ProductPage{
		Data:        items,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     ProductsPerPage,
		Total:       total,
	}, nil
}

// Get returns the product or an error wrapping common.ErrorNotFound.
func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.repomanager.Products(s.db).Get(ctx, id)
	if err != nil {
		return nil, wrapProductErr(err)
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	p, err := validateProduct(in)
	if err != nil {
		return nil, err
	}

	p, err = s.repomanager.Products(s.db).Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput) (*models.Product, error) {
	p, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	p.ID = id

	p, err = s.repomanager.Products(s.db).Update(ctx, p)
	if err != nil {
		return nil, wrapProductErr(err)
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Products(s.db).Delete(ctx, id); err != nil {
		return wrapProductErr(err)
	}
	return nil
}

func validateProduct(in ProductInput) (*models.Product, error) {
	verr := NewValidationError()
	name := strings.TrimSpace(in.Name)

	if name == "" {
		verr.Add("name", requiredMsg("name"))
	} else if utf8.RuneCountInString(name) > maxProductNameLength {
		verr.Add("name", maxMsg("name", maxProductNameLength))
	}

	switch {
	case in.Price == nil:
		verr.Add("price", requiredMsg("price"))
	case math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0):
		verr.Add("price", "The price field must be a number.")
	case *in.Price < 0:
		verr.Add("price", "The price field must be at least 0.")
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return &models.Product{Name: name, Price: *in.Price}, nil
}

func wrapProductErr(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
