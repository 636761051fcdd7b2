package models

// Result is what store actions report to views. Errors maps a form field (or
// "general") to its messages.
type Result struct {
	Success bool
	Errors  map[string][]string
}

// GeneralErrorKey holds messages not tied to a form field.
const GeneralErrorKey = "general"

func Failure(errs map[string][]string) Result {
	return Result{Errors: errs}
}
