package services

import (
	"fmt"
	"strings"
)

// ValidationError carries per-field messages in the order they were found.
// It is reported to clients as 422 with the first message as the summary.
type ValidationError struct {
	Fields map[string][]string
	order  []string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends msg to field.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Empty() bool {
	return len(e.order) == 0
}

// First returns the first recorded message.
func (e *ValidationError) First() string {
	if e.Empty() {
		return ""
	}
	return e.Fields[e.order[0]][0]
}

// OrNil returns e when it holds at least one message.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	extra := 0
	for _, msgs := range e.Fields {
		extra += len(msgs)
	}
	extra--
	if extra <= 0 {
		return e.First()
	}
	suffix := "error"
	if extra > 1 {
		suffix = "errors"
	}
	return fmt.Sprintf("%s (and %d more %s)", strings.TrimSpace(e.First()), extra, suffix)
}

func requiredMsg(field string) string {
	return fmt.Sprintf("The %s field is required.", field)
}

func maxMsg(field string, n int) string {
	return fmt.Sprintf("The %s field must not be greater than %d characters.", field, n)
}
