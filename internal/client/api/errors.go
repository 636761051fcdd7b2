package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// ResponseError is a non-2xx answer from the backend.
type ResponseError struct {
	Status int
	Body   []byte

	// Message is the "message" field (422, 401 Unauthenticated, 404, 500).
	Message string
	// Detail is the "error" field (401 Invalid Credentials).
	Detail string
	// Errors is the 422 field → messages map.
	Errors map[string][]string
}

func newResponseError(status int, body []byte) *ResponseError {
	e := &ResponseError{Status: status, Body: body}

	var payload struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Message = payload.Message
		e.Detail = payload.Error
		e.Errors = payload.Errors
	}
	return e
}

func (e *ResponseError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("api: %d %s", e.Status, e.Detail)
	case e.Message != "":
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
}

// FieldErrors returns the backend's validation errors carried by err, if any.
func FieldErrors(err error) map[string][]string {
	var re *ResponseError
	if errors.As(err, &re) && len(re.Errors) > 0 {
		return re.Errors
	}
	return nil
}

// StatusOf returns the HTTP status carried by err, 0 when err is not a
// *ResponseError.
func StatusOf(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// FieldErrorsOr returns the backend's validation errors carried by err, or a
// single "general" message when there are none.
func FieldErrorsOr(err error, fallback string) map[string][]string {
	if fe := FieldErrors(err); fe != nil {
		return fe
	}
	return map[string][]string{models.GeneralErrorKey: {fallback}}
}
