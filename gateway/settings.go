package gateway

import (
	"context"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// SettingsClient covers the site settings endpoints.
type SettingsClient struct {
	c *Client
}

func (s *SettingsClient) List(ctx context.Context, auth Auth) ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.c.do(ctx, fiber.MethodGet, "/settings", auth, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsClient) Update(ctx context.Context, auth Auth, input models.SettingInput) (*models.Setting, error) {
	var setting models.Setting
	if err := s.c.do(ctx, fiber.MethodPut, "/settings", auth, input, &setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// BulkUpdate replaces several settings in one round trip.
func (s *SettingsClient) BulkUpdate(ctx context.Context, auth Auth, settings []models.SettingInput) ([]models.Setting, error) {
	payload := map[string][]models.SettingInput{"settings": settings}
	var updated []models.Setting
	if err := s.c.do(ctx, fiber.MethodPut, "/settings/bulk", auth, payload, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}
