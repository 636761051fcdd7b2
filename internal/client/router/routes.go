// Package router maps terminal views to routes and guards navigation on the
// session's authentication state.
package router

import "strings"

// Route is a navigable view.
type Route struct {
	Name          string
	Path          string
	Redirect      string
	RequiresAuth  bool
	RequiresGuest bool
}

const (
	Home      = "home"
	Login     = "login"
	Register  = "register"
	Dashboard = "dashboard"
	Products  = "products"
	Profile   = "profile"
)

// DefaultRoutes is the storefront route table.
func DefaultRoutes() []Route {
	return []Route{
		{Name: Home, Path: "/", Redirect: "/dashboard"},
		{Name: Login, Path: "/login", RequiresGuest: true},
		{Name: Register, Path: "/register", RequiresGuest: true},
		{Name: Dashboard, Path: "/dashboard", RequiresAuth: true},
		{Name: Products, Path: "/products", RequiresAuth: true},
		{Name: Profile, Path: "/profile", RequiresAuth: true},
	}
}

type table struct {
	byName map[string]Route
	byPath map[string]Route
}

func newTable(routes []Route) table {
	t := table{byName: make(map[string]Route, len(routes)), byPath: make(map[string]Route, len(routes))}
	for _, r := range routes {
		t.byName[r.Name] = r
		t.byPath[r.Path] = r
	}
	return t
}

// lookup accepts a route name or a path.
func (t table) lookup(target string) (Route, bool) {
	target = strings.TrimSpace(target)
	if strings.HasPrefix(target, "/") {
		if len(target) > 1 {
			target = strings.TrimRight(target, "/")
		}
		r, ok := t.byPath[target]
		return r, ok
	}
	r, ok := t.byName[target]
	return r, ok
}
