package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avolkov/backoffice/internal/api"
	"github.com/avolkov/backoffice/internal/grid"
	"github.com/avolkov/backoffice/internal/logging"
	"github.com/avolkov/backoffice/internal/models"
)

// OrderService manages order headers and their line items. Lines can only
// attach to an order that already holds a server-assigned id, so header
// creation goes through a CreateGuard: concurrent line additions to a
// not-yet-created order share a single create request.
type OrderService struct {
	api   *api.Client
	log   logging.Logger
	guard grid.CreateGuard
}

func NewOrderService(apiClient *api.Client, log logging.Logger) *OrderService {
	if log == nil {
		log = logging.NewNop()
	}
	return &OrderService{api: apiClient, log: log.With("service", "orders")}
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := s.api.GetJSON(ctx, "api/Order", &out); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	var out models.Order
	if err := s.api.GetJSON(ctx, fmt.Sprintf("api/Order/%d", id), &out); err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &out, nil
}

func (s *OrderService) Create(ctx context.Context, o models.Order) (*models.Order, error) {
	var out models.Order
	if err := s.api.PostJSON(ctx, "api/Order", o, &out); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &out, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("api/Order/%d", id)); err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	return nil
}

// EnsureOrder makes sure the order header exists remotely and returns its
// id, creating it at most once even when called concurrently. On success
// the order's ID field is filled in.
func (s *OrderService) EnsureOrder(ctx context.Context, order *models.Order) (int64, error) {
	if order.ID != 0 {
		return order.ID, nil
	}

	id, err := s.guard.Ensure(ctx, fmt.Sprintf("order:user:%d", order.UserID), func(ctx context.Context) (int64, error) {
		created, err := s.Create(ctx, *order)
		if err != nil {
			return 0, err
		}
		if created.ID == 0 {
			return 0, fmt.Errorf("server did not assign an order id")
		}
		return created.ID, nil
	})
	if err != nil {
		return 0, err
	}
	order.ID = id
	return id, nil
}

// AddLine attaches a line to an existing order. The denormalized product
// name and price must already be filled in from the loaded product list.
func (s *OrderService) AddLine(ctx context.Context, line models.OrderLine) (*models.OrderLine, error) {
	if line.OrderID == 0 {
		return nil, fmt.Errorf("add line: order has no id yet")
	}
	line.Recalc()
	var out models.OrderLine
	if err := s.api.PostJSON(ctx, "api/OrderItem", line, &out); err != nil {
		return nil, fmt.Errorf("add line: %w", err)
	}
	return &out, nil
}

func (s *OrderService) UpdateLine(ctx context.Context, line models.OrderLine) (*models.OrderLine, error) {
	resp, err := s.api.Do(ctx, "PUT", fmt.Sprintf("api/OrderItem/%d", line.ID), line)
	if err != nil {
		return nil, err
	}
	return optionalEcho[models.OrderLine](ctx, s.log, resp)
}

func (s *OrderService) DeleteLine(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("api/OrderItem/%d", id)); err != nil {
		return fmt.Errorf("delete line %d: %w", id, err)
	}
	return nil
}

// LineEditor builds the inline-edit contract for order lines. products is
// the freshest loaded option list: editing productId refreshes the line's
// denormalized ProductName and Price from it, never from stale values
// cached on the line itself.
func (s *OrderService) LineEditor(products []models.Product, notifier grid.Notifier) *grid.Editor[models.OrderLine] {
	productByID := func(id int64) *models.Product {
		for i := range products {
			if products[i].ID == id {
				return &products[i]
			}
		}
		return nil
	}

	return &grid.Editor[models.OrderLine]{
		Normalize: grid.TrimSpace,
		Validate: func(field, value string) error {
			switch field {
			case "quantity":
				return grid.PositiveQuantity(field, value)
			case "price":
				return grid.Price(field, value)
			case "productId":
				return grid.KnownID(field, value, func(id int64) bool { return productByID(id) != nil })
			default:
				return fmt.Errorf("field %q is not editable", field)
			}
		},
		Apply: func(row *models.OrderLine, field, value string) error {
			switch field {
			case "quantity":
				n, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return fmt.Errorf("quantity must be a whole number")
				}
				row.Quantity = n
			case "price":
				n, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("price must be a number")
				}
				row.Price = n
			case "productId":
				id, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return fmt.Errorf("productId must be an id")
				}
				row.ProductID = id
				if p := productByID(id); p != nil {
					row.ProductName = p.Name
					row.Price = p.Price
				}
			default:
				return fmt.Errorf("field %q is not editable", field)
			}
			return nil
		},
		Recompute: func(row *models.OrderLine) { row.Recalc() },
		Persist:   s.UpdateLine,
		Notifier:  notifier,
	}
}
