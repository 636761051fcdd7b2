package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	AddProduct(ctx context.Context) error
	EditProduct(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: login, register, help, exit"
	helpMember = "Available commands: dashboard, products [page], product <id>, addproduct, editproduct <id>, deleteproduct <id>, profile, refresh, logout, help, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// The loop ends on EOF, "exit" or "quit". Handler errors are reported and
// the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("sf %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Input error:", err)
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "register":
			cmdErr = a.Register(ctx)

		case "dashboard":
			cmdErr = a.Dashboard(ctx)

		case "products":
			cmdErr = a.Products(ctx, args)

		case "product":
			cmdErr = a.Product(ctx, args)

		case "addproduct":
			cmdErr = a.AddProduct(ctx)

		case "editproduct":
			cmdErr = a.EditProduct(ctx, args)

		case "deleteproduct":
			cmdErr = a.DeleteProduct(ctx, args)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}
	}
}

// describeError turns transport failures into something a user can act on.
// Other errors are shown as they are.
func describeError(err error) string {
	switch status := api.StatusOf(err); {
	case errors.Is(err, api.ErrUnavailable):
		return "server is unreachable, try again later"
	case status == http.StatusUnauthorized:
		return "session expired, please log in again"
	case status == http.StatusForbidden:
		return "not allowed"
	case status >= http.StatusInternalServerError:
		return fmt.Sprintf("server error (%d), try again later", status)
	default:
		return err.Error()
	}
}
