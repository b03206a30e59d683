package gateway

import (
	"context"
	"fmt"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// CommentsClient covers comment CRUD plus the like and report actions.
type CommentsClient struct {
	c *Client
}

// List returns every comment across articles (moderation view).
func (cc *CommentsClient) List(ctx context.Context, auth Auth) ([]models.Comment, error) {
	var comments []models.Comment
	if err := cc.c.do(ctx, fiber.MethodGet, "/comments", auth, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByArticle returns the comment tree of one article. Passing caller
// credentials lets the upstream fill in per-user is_liked flags.
func (cc *CommentsClient) ListByArticle(ctx context.Context, auth Auth, articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	path := fmt.Sprintf("/articles/%d/comments", articleID)
	if err := cc.c.do(ctx, fiber.MethodGet, path, auth, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (cc *CommentsClient) Get(ctx context.Context, auth Auth, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := cc.c.do(ctx, fiber.MethodGet, fmt.Sprintf("/comments/%d", id), auth, nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (cc *CommentsClient) Create(ctx context.Context, auth Auth, input models.CommentInput) (*models.Comment, error) {
	var comment models.Comment
	if err := cc.c.do(ctx, fiber.MethodPost, "/comments", auth, input, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (cc *CommentsClient) Update(ctx context.Context, auth Auth, id uint, content string) (*models.Comment, error) {
	var comment models.Comment
	payload := map[string]string{"content": content}
	if err := cc.c.do(ctx, fiber.MethodPut, fmt.Sprintf("/comments/%d", id), auth, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (cc *CommentsClient) Delete(ctx context.Context, auth Auth, id uint) error {
	return cc.c.do(ctx, fiber.MethodDelete, fmt.Sprintf("/comments/%d", id), auth, nil, nil)
}

func (cc *CommentsClient) SetStatus(ctx context.Context, auth Auth, id uint, status string) error {
	payload := map[string]string{"status": status}
	return cc.c.do(ctx, fiber.MethodPatch, fmt.Sprintf("/comments/%d/status", id), auth, payload, nil)
}

// ToggleLike flips the caller's like on a comment. The authoritative
// likes_count comes from a subsequent list fetch, never from local math.
func (cc *CommentsClient) ToggleLike(ctx context.Context, auth Auth, id uint) error {
	return cc.c.do(ctx, fiber.MethodPost, fmt.Sprintf("/comments/%d/like", id), auth, nil, nil)
}

// Report flags a comment for moderation. Fire-and-forget from the caller's
// point of view.
func (cc *CommentsClient) Report(ctx context.Context, auth Auth, id uint) error {
	return cc.c.do(ctx, fiber.MethodPost, fmt.Sprintf("/comments/%d/report", id), auth, nil, nil)
}
