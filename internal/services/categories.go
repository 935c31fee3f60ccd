package services

import (
	"context"
	"fmt"

	"github.com/avolkov/backoffice/internal/api"
	"github.com/avolkov/backoffice/internal/grid"
	"github.com/avolkov/backoffice/internal/logging"
	"github.com/avolkov/backoffice/internal/models"
)

type CategoryService struct {
	api *api.Client
	log logging.Logger
}

func NewCategoryService(apiClient *api.Client, log logging.Logger) *CategoryService {
	if log == nil {
		log = logging.NewNop()
	}
	return &CategoryService{api: apiClient, log: log.With("service", "categories")}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.api.GetJSON(ctx, "api/Category", &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, c models.Category) (*models.Category, error) {
	var out models.Category
	if err := s.api.PostJSON(ctx, "api/Category", c, &out); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &out, nil
}

func (s *CategoryService) Update(ctx context.Context, c models.Category) (*models.Category, error) {
	resp, err := s.api.Do(ctx, "PUT", fmt.Sprintf("api/Category/%d", c.ID), c)
	if err != nil {
		return nil, err
	}
	return optionalEcho[models.Category](ctx, s.log, resp)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("api/Category/%d", id)); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}

func (s *CategoryService) Editor(notifier grid.Notifier) *grid.Editor[models.Category] {
	return &grid.Editor[models.Category]{
		Normalize: grid.TrimSpace,
		Validate: func(field, value string) error {
			switch field {
			case "name":
				return grid.RequiredText(field, value)
			case "description":
				return nil
			default:
				return fmt.Errorf("field %q is not editable", field)
			}
		},
		Apply: func(row *models.Category, field, value string) error {
			switch field {
			case "name":
				row.Name = value
			case "description":
				row.Description = value
			default:
				return fmt.Errorf("field %q is not editable", field)
			}
			return nil
		},
		Persist:  s.Update,
		Notifier: notifier,
	}
}
