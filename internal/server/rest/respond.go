package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/services"
)

type messageBody struct {
	Message string `json:"message"`
}

type validationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type errorBody struct {
	Error string `json:"error"`
}

var (
	unauthenticatedBody = messageBody{Message: "Unauthenticated."}
	serverErrorBody     = messageBody{Message: "Server Error"}
	invalidCredsBody    = errorBody{Error: "Invalid Credentials"}
	productNotFoundBody = messageBody{Message: "Product not found."}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto status codes. notFound is the body used
// for common.ErrorNotFound.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error, notFound any) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody{Message: verr.First(), Errors: verr.Fields})
	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, invalidCredsBody)
	case errors.Is(err, common.ErrorUnauthorized):
		writeJSON(w, http.StatusUnauthorized, unauthenticatedBody)
	case errors.Is(err, common.ErrorNotFound) && notFound != nil:
		writeJSON(w, http.StatusNotFound, notFound)
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, serverErrorBody)
	}
}

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON body into T. A missing or malformed body yields the
// zero value so that field validation reports what is absent.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) T {
	var v T
	if r.Body == nil {
		return v
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&v); err != nil {
		var zero T
		return zero
	}
	return v
}
