package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Client is the typed storefront API.
type Client struct {
	p *Pipeline
}

func NewClient(p *Pipeline) *Client {
	return &Client{p: p}
}

func (c *Client) Register(ctx context.Context, data models.RegisterData) (*models.TokenResponse, error) {
	var out models.TokenResponse
	if err := c.p.Do(ctx, http.MethodPost, "/api/auth/register", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, data models.LoginData) (*models.TokenResponse, error) {
	var out models.TokenResponse
	if err := c.p.Do(ctx, http.MethodPost, "/api/auth/login", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context) (*models.TokenResponse, error) {
	var out models.TokenResponse
	if err := c.p.Do(ctx, http.MethodPost, "/api/auth/refresh", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.p.Do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.p.Do(ctx, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProducts(ctx context.Context, page int) (*models.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{"page": {strconv.Itoa(page)}}

	var out models.ProductPage
	if err := c.p.Do(ctx, http.MethodGet, "/api/products?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var out models.Product
	if err := c.p.Do(ctx, http.MethodGet, productPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, data models.ProductData) (*models.Product, error) {
	var out models.Product
	if err := c.p.Do(ctx, http.MethodPost, "/api/products", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, data models.ProductData) (*models.Product, error) {
	var out models.Product
	if err := c.p.Do(ctx, http.MethodPut, productPath(id), data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.p.Do(ctx, http.MethodDelete, productPath(id), nil, nil)
}

func productPath(id int64) string {
	return fmt.Sprintf("/api/products/%d", id)
}
