package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/router"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) Login(ctx context.Context) error {
	ok, err := a.enter(ctx, router.Login)
	if err != nil || !ok {
		return err
	}
	return a.loginForm(ctx)
}

// loginForm collects credentials and, on success, moves to the dashboard.
func (a *App) loginForm(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Login ==")

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	res := a.session.Login(ctx, models.LoginData{Email: email, Password: password})
	if !res.Success {
		fmt.Fprintln(a.out, "Login unsuccessful:")
		printErrors(a.out, res.Errors)
		return nil
	}

	fmt.Fprintln(a.out, "Login successful")
	return a.open(ctx, router.Dashboard)
}

func (a *App) Register(ctx context.Context) error {
	ok, err := a.enter(ctx, router.Register)
	if err != nil || !ok {
		return err
	}
	return a.registerForm(ctx)
}

func (a *App) registerForm(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Register ==")

	var data models.RegisterData
	var err error

	if data.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if data.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if data.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}
	if data.PasswordConfirmation, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	res := a.session.Register(ctx, data)
	if !res.Success {
		fmt.Fprintln(a.out, "Registration unsuccessful:")
		printErrors(a.out, res.Errors)
		return nil
	}

	fmt.Fprintln(a.out, "Registration successful")
	return a.open(ctx, router.Dashboard)
}

// Refresh exchanges the current token for a new one. A rejected refresh
// ends the session.
func (a *App) Refresh(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err := a.session.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Session refreshed")
	return nil
}

// Logout ends the session; the session store moves the router to login.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
