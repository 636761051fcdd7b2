package rest

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/server/services"
)

// productRequest keeps price raw so that numeric strings are accepted and
// non-numeric values can be told apart from a missing one.
type productRequest struct {
	Name  string          `json:"name"`
	Price json.RawMessage `json:"price"`
}

func (p productRequest) input() services.ProductInput {
	return services.ProductInput{Name: p.Name, Price: parsePrice(p.Price)}
}

func parsePrice(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	nan := math.NaN()

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return &nan
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return &nan
	}
	return &f
}

func productID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *HTTPServer) handleListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	out, err := s.products.List(r.Context(), page)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, productNotFoundBody)
		return
	}

	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, productNotFoundBody)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[productRequest](w, r)

	p, err := s.products.Create(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *HTTPServer) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, productNotFoundBody)
		return
	}
	req := decodeBody[productRequest](w, r)

	p, err := s.products.Update(r.Context(), id, req.input())
	if err != nil {
		s.writeError(w, r, err, productNotFoundBody)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, productNotFoundBody)
		return
	}

	if err := s.products.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, productNotFoundBody)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
