package gateway

import (
	"context"
	"fmt"
	"net/url"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// PortfolioClient covers the portfolio project endpoints.
type PortfolioClient struct {
	c *Client
}

func (p *PortfolioClient) List(ctx context.Context, auth Auth, status string) ([]models.PortfolioProject, error) {
	path := "/portfolio"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var projects []models.PortfolioProject
	if err := p.c.do(ctx, fiber.MethodGet, path, auth, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (p *PortfolioClient) Get(ctx context.Context, auth Auth, id uint) (*models.PortfolioProject, error) {
	var project models.PortfolioProject
	if err := p.c.do(ctx, fiber.MethodGet, fmt.Sprintf("/portfolio/%d", id), auth, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (p *PortfolioClient) Create(ctx context.Context, auth Auth, input models.PortfolioInput) (*models.PortfolioProject, error) {
	var project models.PortfolioProject
	if err := p.c.do(ctx, fiber.MethodPost, "/portfolio", auth, input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (p *PortfolioClient) Update(ctx context.Context, auth Auth, id uint, input models.PortfolioInput) (*models.PortfolioProject, error) {
	var project models.PortfolioProject
	if err := p.c.do(ctx, fiber.MethodPut, fmt.Sprintf("/portfolio/%d", id), auth, input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (p *PortfolioClient) Delete(ctx context.Context, auth Auth, id uint) error {
	return p.c.do(ctx, fiber.MethodDelete, fmt.Sprintf("/portfolio/%d", id), auth, nil, nil)
}

func (p *PortfolioClient) SetStatus(ctx context.Context, auth Auth, id uint, status string) error {
	payload := map[string]string{"status": status}
	return p.c.do(ctx, fiber.MethodPatch, fmt.Sprintf("/portfolio/%d/status", id), auth, payload, nil)
}
