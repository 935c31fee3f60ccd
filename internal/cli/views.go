package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/avolkov/backoffice/internal/grid"
	"github.com/avolkov/backoffice/internal/models"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// Products lists the catalog and refreshes the editor cache.
func (a *App) Products(ctx context.Context) error {
	products, err := a.products.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.productCache = products

	for _, p := range products {
		printlnFn(fmt.Sprintf("%4d  %-30s %10.2f  %s", p.ID, p.Name, p.Price, p.CategoryName))
	}
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	categories, err := a.categories.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.categoryCache = categories

	for _, c := range categories {
		printlnFn(fmt.Sprintf("%4d  %-30s %s", c.ID, c.Name, c.Description))
	}
	return nil
}

func (a *App) Orders(ctx context.Context) error {
	orders, err := a.orders.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	for _, o := range orders {
		printlnFn(fmt.Sprintf("%4d  %-25s %-10s %10.2f  %d items",
			o.ID, o.UserEmail, o.Status, o.Total, len(o.Items)))
	}
	return nil
}

// Users lists accounts. Restricted to administrators.
func (a *App) Users(ctx context.Context) error {
	if !a.isAdmin() {
		printlnFn("Forbidden: administrator role required")
		return nil
	}

	users, err := a.users.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.userCache = users

	for _, u := range users {
		printlnFn(fmt.Sprintf("%4d  %-30s %-20s %s", u.ID, u.Email, u.UsersName, u.Role))
	}
	return nil
}

// Order shows a single order with its lines and makes it the target for
// subsequent "set line" and "delete line" commands.
func (a *App) Order(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	order, err := a.orders.Get(ctx, id)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.currentOrder = order

	printlnFn(fmt.Sprintf("Order %d  %s  %s", order.ID, order.UserEmail, order.Status))
	for _, l := range order.Items {
		printlnFn(fmt.Sprintf("%4d  %-30s %6d x %8.2f = %10.2f",
			l.ID, l.ProductName, l.Quantity, l.Price, l.RowSum))
	}
	printlnFn(fmt.Sprintf("Total: %.2f", order.Total))
	return nil
}

// Set applies an inline edit: set <entity> <id> <field> <value>. The value
// may contain spaces. Edits go through the optimistic editor for the entity,
// so invalid input and rejected writes roll the row back.
func (a *App) Set(ctx context.Context, args []string) error {
	entity := args[0]
	id, err := parseID(args[1])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	field := args[2]
	value := strings.Join(args[3:], " ")

	switch entity {
	case "product":
		return a.setProduct(ctx, id, field, value)
	case "category":
		return a.setCategory(ctx, id, field, value)
	case "user":
		return a.setUser(ctx, id, field, value)
	case "line":
		return a.setLine(ctx, id, field, value)
	default:
		printlnFn("Unknown entity:", entity)
		return fmt.Errorf("unknown entity %q", entity)
	}
}

func (a *App) setProduct(ctx context.Context, id int64, field, value string) error {
	if err := a.ensureProducts(ctx); err != nil {
		return err
	}
	if len(a.categoryCache) == 0 {
		if err := a.ensureCategories(ctx); err != nil {
			return err
		}
	}

	for i := range a.productCache {
		if a.productCache[i].ID != id {
			continue
		}
		row := &a.productCache[i]
		editor := a.products.Editor(a.categoryCache, a.notifier)
		return editor.Edit(ctx, row, grid.Edit{
			Field: field, Value: value, Previous: productField(*row, field),
		})
	}
	printlnFn("Product not found:", id)
	return fmt.Errorf("product %d not found", id)
}

func (a *App) setCategory(ctx context.Context, id int64, field, value string) error {
	if err := a.ensureCategories(ctx); err != nil {
		return err
	}

	for i := range a.categoryCache {
		if a.categoryCache[i].ID != id {
			continue
		}
		row := &a.categoryCache[i]
		editor := a.categories.Editor(a.notifier)
		return editor.Edit(ctx, row, grid.Edit{
			Field: field, Value: value, Previous: categoryField(*row, field),
		})
	}
	printlnFn("Category not found:", id)
	return fmt.Errorf("category %d not found", id)
}

func (a *App) setUser(ctx context.Context, id int64, field, value string) error {
	if !a.isAdmin() {
		printlnFn("Forbidden: administrator role required")
		return nil
	}
	if len(a.userCache) == 0 {
		if err := a.Users(ctx); err != nil {
			return err
		}
	}

	for i := range a.userCache {
		if a.userCache[i].ID != id {
			continue
		}
		row := &a.userCache[i]
		editor := a.users.Editor(a.notifier)
		return editor.Edit(ctx, row, grid.Edit{
			Field: field, Value: value, Previous: userField(*row, field),
		})
	}
	printlnFn("User not found:", id)
	return fmt.Errorf("user %d not found", id)
}

func (a *App) setLine(ctx context.Context, id int64, field, value string) error {
	if a.currentOrder == nil {
		printlnFn("Load an order first: order <id>")
		return fmt.Errorf("no order loaded")
	}
	if err := a.ensureProducts(ctx); err != nil {
		return err
	}

	for i := range a.currentOrder.Items {
		if a.currentOrder.Items[i].ID != id {
			continue
		}
		row := &a.currentOrder.Items[i]
		editor := a.orders.LineEditor(a.productCache, a.notifier)
		err := editor.Edit(ctx, row, grid.Edit{
			Field: field, Value: value, Previous: lineField(*row, field),
		})
		a.currentOrder.Recalc()
		return err
	}
	printlnFn("Line not found:", id)
	return fmt.Errorf("line %d not found", id)
}

// AddItem adds a line to an order: additem <orderId|new> <productId> <qty>.
// "new" creates a draft order for the current user first; repeated
// invocations while that creation is in flight share a single POST.
func (a *App) AddItem(ctx context.Context, args []string) error {
	productID, err := parseID(args[1])
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	qty, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil || qty <= 0 {
		printlnFn("Invalid quantity:", args[2])
		return fmt.Errorf("invalid quantity %q", args[2])
	}

	var orderID int64
	if args[0] == "new" {
		snap := a.session.Snapshot()
		if snap.User == nil {
			printlnFn("Log in first")
			return fmt.Errorf("not logged in")
		}
		// Reuse the current draft when it belongs to this user; EnsureOrder
		// short-circuits once the order has an ID.
		order := a.currentOrder
		if order == nil || order.UserID != snap.User.ID {
			order = &models.Order{UserID: snap.User.ID}
			a.currentOrder = order
		}
		orderID, err = a.orders.EnsureOrder(ctx, order)
		if err != nil {
			printlnFn("Error:", err.Error())
			return err
		}
	} else {
		orderID, err = parseID(args[0])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
	}

	if err := a.ensureProducts(ctx); err != nil {
		return err
	}
	var product *models.Product
	for i := range a.productCache {
		if a.productCache[i].ID == productID {
			product = &a.productCache[i]
			break
		}
	}
	if product == nil {
		printlnFn("Product not found:", productID)
		return fmt.Errorf("product %d not found", productID)
	}

	line, err := a.orders.AddLine(ctx, models.OrderLine{
		OrderID:     orderID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    qty,
	})
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Added line %d to order %d: %s x %d", line.ID, orderID, line.ProductName, line.Quantity))
	return nil
}

// Upload stores an image for a product: upload <productId> <path>.
func (a *App) Upload(ctx context.Context, args []string) error {
	productID, err := parseID(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	url, err := a.images.Upload(ctx, productID, data)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn("Uploaded:", url)
	return nil
}

// Delete removes an entity: delete <entity> <id>.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args[1])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	switch args[0] {
	case "product":
		err = a.products.Delete(ctx, id)
	case "category":
		err = a.categories.Delete(ctx, id)
	case "order":
		err = a.orders.Delete(ctx, id)
	case "line":
		err = a.orders.DeleteLine(ctx, id)
	case "image":
		err = a.images.Delete(ctx, id)
	case "user":
		if !a.isAdmin() {
			printlnFn("Forbidden: administrator role required")
			return nil
		}
		err = a.users.Delete(ctx, id)
	default:
		printlnFn("Unknown entity:", args[0])
		return fmt.Errorf("unknown entity %q", args[0])
	}

	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Deleted")
	return nil
}

func (a *App) ensureProducts(ctx context.Context) error {
	if len(a.productCache) > 0 {
		return nil
	}
	products, err := a.products.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.productCache = products
	return nil
}

func (a *App) ensureCategories(ctx context.Context) error {
	if len(a.categoryCache) > 0 {
		return nil
	}
	categories, err := a.categories.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.categoryCache = categories
	return nil
}

func productField(p models.Product, field string) string {
	switch field {
	case "name":
		return p.Name
	case "description":
		return p.Description
	case "price":
		return strconv.FormatFloat(p.Price, 'f', -1, 64)
	case "categoryId":
		return strconv.FormatInt(p.CategoryID, 10)
	}
	return ""
}

func categoryField(c models.Category, field string) string {
	switch field {
	case "name":
		return c.Name
	case "description":
		return c.Description
	}
	return ""
}

func userField(u models.User, field string) string {
	switch field {
	case "email":
		return u.Email
	case "usersName":
		return u.UsersName
	case "role":
		return u.Role
	}
	return ""
}

func lineField(l models.OrderLine, field string) string {
	switch field {
	case "quantity":
		return strconv.FormatInt(l.Quantity, 10)
	case "price":
		return strconv.FormatFloat(l.Price, 'f', -1, 64)
	case "productId":
		return strconv.FormatInt(l.ProductID, 10)
	}
	return ""
}
