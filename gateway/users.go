package gateway

import (
	"context"
	"fmt"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// UsersClient covers account administration endpoints.
type UsersClient struct {
	c *Client
}

func (u *UsersClient) List(ctx context.Context, auth Auth) ([]models.User, error) {
	var users []models.User
	if err := u.c.do(ctx, fiber.MethodGet, "/users", auth, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *UsersClient) Get(ctx context.Context, auth Auth, id uint) (*models.User, error) {
	var user models.User
	if err := u.c.do(ctx, fiber.MethodGet, fmt.Sprintf("/users/%d", id), auth, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersClient) Create(ctx context.Context, auth Auth, input models.UserInput) (*models.User, error) {
	var user models.User
	if err := u.c.do(ctx, fiber.MethodPost, "/users", auth, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersClient) Update(ctx context.Context, auth Auth, id uint, input models.UserInput) (*models.User, error) {
	var user models.User
	if err := u.c.do(ctx, fiber.MethodPut, fmt.Sprintf("/users/%d", id), auth, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersClient) Delete(ctx context.Context, auth Auth, id uint) error {
	return u.c.do(ctx, fiber.MethodDelete, fmt.Sprintf("/users/%d", id), auth, nil, nil)
}

func (u *UsersClient) SetRole(ctx context.Context, auth Auth, id uint, role string) error {
	payload := map[string]string{"role": role}
	return u.c.do(ctx, fiber.MethodPatch, fmt.Sprintf("/users/%d/role", id), auth, payload, nil)
}
