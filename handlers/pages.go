package handlers

import (
	"vitrine/gateway"
	"vitrine/models"
	"vitrine/store"

	"github.com/gofiber/fiber/v2"
)

// siteSettings loads the public site settings with a cache-aside read;
// public pages are read-heavy and the settings barely change.
func (h *Handlers) siteSettings(c *fiber.Ctx) ([]models.Setting, error) {
	var settings []models.Setting
	err := store.CacheAside(c.UserContext(), h.cache, "cache:settings", &settings, h.cacheTTL, func() error {
		loaded, err := h.gw.Settings.List(c.UserContext(), gateway.Public)
		if err != nil {
			return err
		}
		settings = loaded
		return nil
	})
	return settings, err
}

// Home assembles the landing page: settings, the latest articles and the
// published portfolio highlights.
func (h *Handlers) Home(c *fiber.Ctx) error {
	ctx := c.UserContext()

	settings, err := h.siteSettings(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var articles []models.Article
	err = store.CacheAside(ctx, h.cache, "cache:articles:published", &articles, h.cacheTTL, func() error {
		loaded, err := h.gw.Articles.List(ctx, gateway.Public, models.StatusPublished)
		if err != nil {
			return err
		}
		articles = loaded
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var projects []models.PortfolioProject
	err = store.CacheAside(ctx, h.cache, "cache:portfolio:published", &projects, h.cacheTTL, func() error {
		loaded, err := h.gw.Portfolio.List(ctx, gateway.Public, models.StatusPublished)
		if err != nil {
			return err
		}
		projects = loaded
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if len(articles) > 3 {
		articles = articles[:3]
	}
	if len(projects) > 4 {
		projects = projects[:4]
	}

	return c.JSON(fiber.Map{
		"page":      "home",
		"settings":  settings,
		"articles":  articles,
		"portfolio": projects,
	})
}

// Services renders the services page from site settings.
func (h *Handlers) Services(c *fiber.Ctx) error {
	settings, err := h.siteSettings(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":     "services",
		"settings": settings,
	})
}

// About renders the about page from site settings.
func (h *Handlers) About(c *fiber.Ctx) error {
	settings, err := h.siteSettings(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":     "about",
		"settings": settings,
	})
}

// Formations renders the published training courses.
func (h *Handlers) Formations(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var formations []models.Formation
	err := store.CacheAside(ctx, h.cache, "cache:formations:published", &formations, h.cacheTTL, func() error {
		loaded, err := h.gw.Formations.List(ctx, gateway.Public, models.StatusPublished)
		if err != nil {
			return err
		}
		formations = loaded
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"page":       "formation",
		"formations": formations,
	})
}

// ContactPage serves the contact form view model.
func (h *Handlers) ContactPage(c *fiber.Ctx) error {
	settings, err := h.siteSettings(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":     "contact",
		"settings": settings,
	})
}

// ContactSubmit relays a contact message upstream. Route is rate limited.
func (h *Handlers) ContactSubmit(c *fiber.Ctx) error {
	var input models.ContactInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}
	if err := h.gw.Contacts.Create(c.UserContext(), input); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}
