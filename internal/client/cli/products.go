package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/router"
)

func (a *App) Products(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 || len(args) > 1 {
			return fmt.Errorf("%w: products [page]", errUsage)
		}
		page = p
	}

	ok, err := a.enter(ctx, router.Products)
	if err != nil || !ok {
		return err
	}
	return a.showProducts(ctx, page)
}

func (a *App) showProducts(ctx context.Context, page int) error {
	if err := a.products.FetchProducts(ctx, page); err != nil {
		return err
	}

	items := a.products.Products()
	pg := a.products.Pagination()

	fmt.Fprintln(a.out, "== Products ==")
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No products.")
	} else {
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPRICE")
		for _, p := range items {
			fmt.Fprintf(tw, "%d\t%s\t%.2f\n", p.ID, p.Name, p.Price)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "Page %d of %d (%d total)\n", pg.CurrentPage, pg.LastPage, pg.Total)
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	id, err := parseID(args, "product <id>")
	if err != nil {
		return err
	}

	ok, err := a.enter(ctx, router.Products)
	if err != nil || !ok {
		return err
	}

	p := a.products.FetchProduct(ctx, id)
	if p == nil {
		fmt.Fprintln(a.out, "Product not found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Price:\t%.2f\n", p.Price)
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Created:\t%s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *App) AddProduct(ctx context.Context) error {
	ok, err := a.enter(ctx, router.Products)
	if err != nil || !ok {
		return err
	}

	fmt.Fprintln(a.out, "== New product ==")
	data, err := a.productForm(nil)
	if err != nil {
		return err
	}

	res := a.products.CreateProduct(ctx, data)
	if !res.Success {
		printErrors(a.out, res.Errors)
		return nil
	}
	fmt.Fprintln(a.out, "Product created")
	return nil
}

func (a *App) EditProduct(ctx context.Context, args []string) error {
	id, err := parseID(args, "editproduct <id>")
	if err != nil {
		return err
	}

	ok, err := a.enter(ctx, router.Products)
	if err != nil || !ok {
		return err
	}

	current := a.products.FetchProduct(ctx, id)
	if current == nil {
		fmt.Fprintln(a.out, "Product not found.")
		return nil
	}

	fmt.Fprintf(a.out, "== Edit product #%d ==\n", id)
	data, err := a.productForm(current)
	if err != nil {
		return err
	}

	res := a.products.UpdateProduct(ctx, id, data)
	if !res.Success {
		printErrors(a.out, res.Errors)
		return nil
	}
	fmt.Fprintln(a.out, "Product updated")
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	id, err := parseID(args, "deleteproduct <id>")
	if err != nil {
		return err
	}

	ok, err := a.enter(ctx, router.Products)
	if err != nil || !ok {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete product #%d? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	res := a.products.DeleteProduct(ctx, id)
	if !res.Success {
		printErrors(a.out, res.Errors)
		return nil
	}
	fmt.Fprintln(a.out, "Product deleted")
	return nil
}

// productForm prompts for name and price. When editing, an empty answer
// keeps the current value.
func (a *App) productForm(current *models.Product) (models.ProductData, error) {
	namePrompt, pricePrompt := "Name", "Price"
	if current != nil {
		namePrompt = fmt.Sprintf("Name [%s]", current.Name)
		pricePrompt = fmt.Sprintf("Price [%s]", formatPrice(current.Price))
	}

	name, err := getSimpleText(a.reader, namePrompt, a.out)
	if err != nil {
		return models.ProductData{}, err
	}
	price, err := getSimpleText(a.reader, pricePrompt, a.out)
	if err != nil {
		return models.ProductData{}, err
	}

	if current != nil {
		if name == "" {
			name = current.Name
		}
		if price == "" {
			price = formatPrice(current.Price)
		}
	}
	return models.ProductData{Name: name, Price: price}, nil
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
