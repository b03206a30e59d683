package gateway

import (
	"context"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// AuthClient covers token issuance and account endpoints.
type AuthClient struct {
	c *Client
}

// Credentials is the token/user pair issued on login and register.
type Credentials struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (a *AuthClient) Login(ctx context.Context, req models.LoginRequest) (*Credentials, error) {
	var creds Credentials
	if err := a.c.do(ctx, fiber.MethodPost, "/auth/login", Public, req, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (a *AuthClient) Register(ctx context.Context, req models.RegisterRequest) (*Credentials, error) {
	var creds Credentials
	if err := a.c.do(ctx, fiber.MethodPost, "/auth/register", Public, req, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Me returns the user the token belongs to. An Unauthorized error here
// means the token is invalid or expired.
func (a *AuthClient) Me(ctx context.Context, auth Auth) (*models.User, error) {
	var user models.User
	if err := a.c.do(ctx, fiber.MethodGet, "/auth/user", auth, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AuthClient) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	return a.c.do(ctx, fiber.MethodPost, "/auth/forgot-password", Public, req, nil)
}

func (a *AuthClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return a.c.do(ctx, fiber.MethodPost, "/auth/reset-password", Public, req, nil)
}
