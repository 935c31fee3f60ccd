package services

import (
	"context"
	"fmt"

	"github.com/avolkov/backoffice/internal/api"
	"github.com/avolkov/backoffice/internal/grid"
	"github.com/avolkov/backoffice/internal/logging"
	"github.com/avolkov/backoffice/internal/models"
)

type UserService struct {
	api *api.Client
	log logging.Logger
}

func NewUserService(apiClient *api.Client, log logging.Logger) *UserService {
	if log == nil {
		log = logging.NewNop()
	}
	return &UserService{api: apiClient, log: log.With("service", "users")}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := s.api.GetJSON(ctx, "api/User", &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *UserService) Update(ctx context.Context, u models.User) (*models.User, error) {
	resp, err := s.api.Do(ctx, "PUT", fmt.Sprintf("api/User/%d", u.ID), u)
	if err != nil {
		return nil, err
	}
	return optionalEcho[models.User](ctx, s.log, resp)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("api/User/%d", id)); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (s *UserService) Editor(notifier grid.Notifier) *grid.Editor[models.User] {
	return &grid.Editor[models.User]{
		Normalize: grid.TrimSpace,
		Validate: func(field, value string) error {
			switch field {
			case "email":
				return grid.Email(field, value)
			case "usersName":
				return nil
			case "role":
				return grid.RequiredText(field, value)
			default:
				return fmt.Errorf("field %q is not editable", field)
			}
		},
		Apply: func(row *models.User, field, value string) error {
			switch field {
			case "email":
				row.Email = value
			case "usersName":
				row.UsersName = value
			case "role":
				row.Role = value
			default:
				return fmt.Errorf("field %q is not editable", field)
			}
			return nil
		},
		Persist:  s.Update,
		Notifier: notifier,
	}
}
