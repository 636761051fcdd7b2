package router

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrUnknownRoute     = errors.New("unknown route")
	ErrTooManyRedirects = errors.New("too many redirects")
)

const maxHops = 5

type Router struct {
	mu      sync.Mutex
	routes  table
	guard   *Guard
	current Route
}

func New(auth AuthState, routes []Route) *Router {
	return &Router{routes: newTable(routes), guard: NewGuard(auth)}
}

// Push navigates to a route name or path, following static redirects and
// guard redirects, and returns the route finally shown.
func (r *Router) Push(target string) (Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hop := 0; hop < maxHops; hop++ {
		to, ok := r.routes.lookup(target)
		if !ok {
			return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, target)
		}

		if to.Redirect != "" {
			target = to.Redirect
			continue
		}

		if d := r.guard.Check(to); !d.Allowed() {
			target = d.Redirect
			continue
		}

		r.current = to
		return to, nil
	}

	return Route{}, fmt.Errorf("%w: %s", ErrTooManyRedirects, target)
}

// Current is the last route successfully navigated to.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
