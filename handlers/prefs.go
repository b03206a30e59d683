package handlers

import (
	"vitrine/models"
	"vitrine/prefs"

	"github.com/gofiber/fiber/v2"
)

// knownCollections are the preference keys the client may address.
var knownCollections = map[string]bool{
	"blog":             true,
	"portfolio":        true,
	"admin-articles":   true,
	"admin-formations": true,
	"admin-portfolios": true,
}

// GetPreferences returns the persisted view preferences for a collection.
func (h *Handlers) GetPreferences(c *fiber.Ctx) error {
	key := c.Params("key")
	if !knownCollections[key] {
		return models.RespondWithError(c, models.NewValidationError("Unknown collection"))
	}
	return c.JSON(h.prefs.Load(c.UserContext(), h.sid(c), key))
}

// PatchPreferences merges a partial update and persists the full snapshot.
func (h *Handlers) PatchPreferences(c *fiber.Ctx) error {
	key := c.Params("key")
	if !knownCollections[key] {
		return models.RespondWithError(c, models.NewValidationError("Unknown collection"))
	}

	var patch prefs.Patch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	updated, err := h.prefs.Update(c.UserContext(), h.sid(c), key, patch)
	if err != nil {
		return models.RespondWithError(c, models.NewServerRejectedError("Could not save preferences"))
	}
	return c.JSON(updated)
}
