package gateway

import (
	"context"
	"fmt"
	"net/url"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// ArticlesClient covers the blog article endpoints.
type ArticlesClient struct {
	c *Client
}

// List returns articles, optionally restricted to a publication status.
func (a *ArticlesClient) List(ctx context.Context, auth Auth, status string) ([]models.Article, error) {
	path := "/articles"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var articles []models.Article
	if err := a.c.do(ctx, fiber.MethodGet, path, auth, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Get accepts a numeric ID or a slug; the upstream resolves both.
func (a *ArticlesClient) Get(ctx context.Context, auth Auth, idOrSlug string) (*models.Article, error) {
	var article models.Article
	if err := a.c.do(ctx, fiber.MethodGet, "/articles/"+url.PathEscape(idOrSlug), auth, nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (a *ArticlesClient) Create(ctx context.Context, auth Auth, input models.ArticleInput) (*models.Article, error) {
	var article models.Article
	if err := a.c.do(ctx, fiber.MethodPost, "/articles", auth, input, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (a *ArticlesClient) Update(ctx context.Context, auth Auth, id uint, input models.ArticleInput) (*models.Article, error) {
	var article models.Article
	if err := a.c.do(ctx, fiber.MethodPut, fmt.Sprintf("/articles/%d", id), auth, input, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (a *ArticlesClient) Delete(ctx context.Context, auth Auth, id uint) error {
	return a.c.do(ctx, fiber.MethodDelete, fmt.Sprintf("/articles/%d", id), auth, nil, nil)
}

func (a *ArticlesClient) SetStatus(ctx context.Context, auth Auth, id uint, status string) error {
	payload := map[string]string{"status": status}
	return a.c.do(ctx, fiber.MethodPatch, fmt.Sprintf("/articles/%d/status", id), auth, payload, nil)
}
