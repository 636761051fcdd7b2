package models

import "time"

type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductData is the create/update form. Price is sent as typed; the backend
// validates that it is numeric.
type ProductData struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type ProductPage struct {
	Data        []*Product `json:"data"`
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
	PerPage     int        `json:"per_page"`
	Total       int        `json:"total"`
}

// Pagination is the listing metadata kept by the product store.
type Pagination struct {
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}
