// Package services contains the REST resource services of the back
// office: one service per entity collection, all sharing the
// authenticated api.Client. Services also build the grid editors for
// their entity, binding field validation, local apply/recompute and the
// remote persist call together.
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

type ProductService struct {
	api *api.Client
	log logging.Logger
}

func NewProductService(apiClient *api.Client, log logging.Logger) *ProductService {
	if log == nil {
		log = logging.NewNop()
	}
	return &ProductService{api: apiClient, log: log.With("service", "products")}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := s.api.GetJSON(ctx, "api/Product", &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	var out models.Product
	if err := s.api.GetJSON(ctx, fmt.Sprintf("api/Product/%d", id), &out); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &out, nil
}

func (s *ProductService) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	var out models.Product
	if err := s.api.PostJSON(ctx, "api/Product", p, &out); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &out, nil
}

// Update persists a full product and returns the server's echo of it, or
// nil when the server answered without a body.
func (s *ProductService) Update(ctx context.Context, p models.Product) (*models.Product, error) {
	resp, err := s.api.Do(ctx, "PUT", fmt.Sprintf("api/Product/%d", p.ID), p)
	if err != nil {
		return nil, err
	}
	return optionalEcho[models.Product](ctx, s.log, resp)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("api/Product/%d", id)); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// Editor builds the inline-edit contract for the product grid. The
// categories slice is the freshest loaded option list: editing categoryId
// refreshes the denormalized CategoryName from it.
func (s *ProductService) Editor(categories []models.Category, notifier grid.Notifier) *grid.Editor[models.Product] {
	categoryByID := func(id int64) *models.Category {
		for i := range categories {
			if categories[i].ID == id {
				return &categories[i]
			}
		}
		return nil
	}

	return &grid.Editor[models.Product]{
		Normalize: grid.TrimSpace,
		Validate: func(field, value string) error {
			switch field {
			case "name":
				return grid.RequiredText(field, value)
			case "price":
				return grid.Price(field, value)
			case "categoryId":
				return grid.KnownID(field, value, func(id int64) bool { return categoryByID(id) != nil })
			case "description":
				return nil
			default:
				return fmt.Errorf("field %q is not editable", field)
			}
		},
		Apply: func(row *models.Product, field, value string) error {
			switch field {
			case "name":
				row.Name = value
			case "description":
				row.Description = value
			case "price":
				n, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("price must be a number")
				}
				row.Price = n
			case "categoryId":
				id, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return fmt.Errorf("categoryId must be an id")
				}
				row.CategoryID = id
				if c := categoryByID(id); c != nil {
					row.CategoryName = c.Name
				}
			default:
				return fmt.Errorf("field %q is not editable", field)
			}
			return nil
		},
		Persist:  s.Update,
		Notifier: notifier,
	}
}
