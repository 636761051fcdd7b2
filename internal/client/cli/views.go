package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/router"
)

var errUsage = errors.New("usage")

// open navigates to target and renders whatever view the router lands on.
func (a *App) open(ctx context.Context, target string) error {
	route, err := a.router.Push(target)
	if err != nil {
		return err
	}
	return a.render(ctx, route)
}

// enter navigates to the named view. When the guard redirects, the redirect
// target is rendered instead and ok is false.
func (a *App) enter(ctx context.Context, name string) (ok bool, err error) {
	route, err := a.router.Push(name)
	if err != nil {
		return false, err
	}
	if route.Name == name {
		return true, nil
	}
	fmt.Fprintf(a.out, "Redirected to %s\n", route.Path)
	return false, a.render(ctx, route)
}

func (a *App) render(ctx context.Context, route router.Route) error {
	switch route.Name {
	case router.Login:
		return a.loginForm(ctx)
	case router.Register:
		return a.registerForm(ctx)
	case router.Dashboard:
		return a.showDashboard()
	case router.Products:
		return a.showProducts(ctx, 1)
	case router.Profile:
		return a.showProfile(ctx)
	default:
		return fmt.Errorf("no view for route %q", route.Name)
	}
}

func (a *App) Dashboard(ctx context.Context) error {
	ok, err := a.enter(ctx, router.Dashboard)
	if err != nil || !ok {
		return err
	}
	return a.showDashboard()
}

func (a *App) showDashboard() error {
	fmt.Fprintln(a.out, "== Dashboard ==")
	if u := a.session.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Welcome, %s (%s)\n", u.Name, u.Email)
	}
	fmt.Fprintln(a.out, "Type 'products' to browse the catalogue or 'help' for all commands.")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	ok, err := a.enter(ctx, router.Profile)
	if err != nil || !ok {
		return err
	}
	return a.showProfile(ctx)
}

func (a *App) showProfile(ctx context.Context) error {
	if err := a.session.FetchUser(ctx); err != nil {
		return err
	}
	u := a.session.CurrentUser()
	if u == nil {
		return nil
	}

	fmt.Fprintln(a.out, "== Profile ==")
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Member since:\t%s\n", u.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

// printErrors writes field errors sorted by field, "general" without a label.
func printErrors(w io.Writer, errs map[string][]string) {
	for _, field := range slices.Sorted(maps.Keys(errs)) {
		for _, msg := range errs[field] {
			if field == models.GeneralErrorKey {
				fmt.Fprintf(w, "  %s\n", msg)
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
	}
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	return id, nil
}
