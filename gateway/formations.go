package gateway

import (
	"context"
	"fmt"
	"net/url"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// FormationsClient covers the training-course endpoints.
type FormationsClient struct {
	c *Client
}

func (f *FormationsClient) List(ctx context.Context, auth Auth, status string) ([]models.Formation, error) {
	path := "/formations"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var formations []models.Formation
	if err := f.c.do(ctx, fiber.MethodGet, path, auth, nil, &formations); err != nil {
		return nil, err
	}
	return formations, nil
}

func (f *FormationsClient) Get(ctx context.Context, auth Auth, id uint) (*models.Formation, error) {
	var formation models.Formation
	if err := f.c.do(ctx, fiber.MethodGet, fmt.Sprintf("/formations/%d", id), auth, nil, &formation); err != nil {
		return nil, err
	}
	return &formation, nil
}

func (f *FormationsClient) Create(ctx context.Context, auth Auth, input models.FormationInput) (*models.Formation, error) {
	var formation models.Formation
	if err := f.c.do(ctx, fiber.MethodPost, "/formations", auth, input, &formation); err != nil {
		return nil, err
	}
	return &formation, nil
}

func (f *FormationsClient) Update(ctx context.Context, auth Auth, id uint, input models.FormationInput) (*models.Formation, error) {
	var formation models.Formation
	if err := f.c.do(ctx, fiber.MethodPut, fmt.Sprintf("/formations/%d", id), auth, input, &formation); err != nil {
		return nil, err
	}
	return &formation, nil
}

func (f *FormationsClient) Delete(ctx context.Context, auth Auth, id uint) error {
	return f.c.do(ctx, fiber.MethodDelete, fmt.Sprintf("/formations/%d", id), auth, nil, nil)
}

func (f *FormationsClient) SetStatus(ctx context.Context, auth Auth, id uint, status string) error {
	payload := map[string]string{"status": status}
	return f.c.do(ctx, fiber.MethodPatch, fmt.Sprintf("/formations/%d/status", id), auth, payload, nil)
}
