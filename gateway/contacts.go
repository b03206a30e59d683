package gateway

import (
	"context"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// ContactsClient submits contact form messages.
type ContactsClient struct {
	c *Client
}

func (cc *ContactsClient) Create(ctx context.Context, input models.ContactInput) error {
	return cc.c.do(ctx, fiber.MethodPost, "/contacts", Public, input, nil)
}
