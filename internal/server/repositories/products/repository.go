// Package products declares the server-side repository for the product catalogue.
package products

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

// Repository persists products. Get, Update and Delete return
// common.ErrorNotFound when the id does not exist.
type Repository interface {
	// List returns at most limit products starting at offset, newest first.
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}
