package handlers

import (
	"context"
	"strconv"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// Dashboard aggregates counts for the admin landing page.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	auth := h.currentSession(c).Auth()

	articles, err := h.gw.Articles.List(ctx, auth, "")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	formations, err := h.gw.Formations.List(ctx, auth, "")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	users, err := h.gw.Users.List(ctx, auth)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	comments, err := h.gw.Comments.List(ctx, auth)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	projects, err := h.gw.Portfolio.List(ctx, auth, "")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"page": "admin-dashboard",
		"counts": fiber.Map{
			"articles":   len(articles),
			"formations": len(formations),
			"users":      len(users),
			"comments":   len(comments),
			"portfolios": len(projects),
		},
	})
}

// --- Articles ---

// AdminArticles lists every article through the same preference-backed
// list state the public collections use.
func (h *Handlers) AdminArticles(c *fiber.Ctx) error {
	ctx := c.UserContext()
	auth := h.currentSession(c).Auth()

	articles, err := h.gw.Articles.List(ctx, auth, c.Query("status"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	viewPrefs, page := h.listState(c, "admin-articles")
	result, page := paginate(articles, filtersFrom(viewPrefs), page, defaultPageSize)

	return c.JSON(fiber.Map{
		"page":         "admin-articles",
		"items":        result.Items,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": page,
		"markers":      markerView(page, result.TotalPages),
		"preferences":  viewPrefs,
		"no_results":   result.Total == 0,
	})
}

func (h *Handlers) AdminGetArticle(c *fiber.Ctx) error {
	auth := h.currentSession(c).Auth()
	article, err := h.gw.Articles.Get(c.UserContext(), auth, c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(article)
}

func (h *Handlers) AdminCreateArticle(c *fiber.Ctx) error {
	var input models.ArticleInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}

	article, err := h.gw.Articles.Create(c.UserContext(), h.currentSession(c).Auth(), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:articles:published")
	return c.Status(fiber.StatusCreated).JSON(article)
}

func (h *Handlers) AdminUpdateArticle(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	var input models.ArticleInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}

	article, err := h.gw.Articles.Update(c.UserContext(), h.currentSession(c).Auth(), id, input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:articles:published")
	return c.JSON(article)
}

func (h *Handlers) AdminDeleteArticle(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := h.gw.Articles.Delete(c.UserContext(), h.currentSession(c).Auth(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:articles:published")
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handlers) AdminArticleStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	status, err := statusFromBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := h.gw.Articles.SetStatus(c.UserContext(), h.currentSession(c).Auth(), id, status); err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:articles:published")
	return c.JSON(fiber.Map{"ok": true, "status": status})
}

// --- Formations ---

func (h *Handlers) AdminFormations(c *fiber.Ctx) error {
	ctx := c.UserContext()
	auth := h.currentSession(c).Auth()

	formations, err := h.gw.Formations.List(ctx, auth, c.Query("status"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	viewPrefs, page := h.listState(c, "admin-formations")
	result, page := paginate(formations, filtersFrom(viewPrefs), page, defaultPageSize)

	return c.JSON(fiber.Map{
		"page":         "admin-formations",
		"items":        result.Items,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": page,
		"markers":      markerView(page, result.TotalPages),
		"preferences":  viewPrefs,
		"no_results":   result.Total == 0,
	})
}

func (h *Handlers) AdminGetFormation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	formation, err := h.gw.Formations.Get(c.UserContext(), h.currentSession(c).Auth(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(formation)
}

func (h *Handlers) AdminCreateFormation(c *fiber.Ctx) error {
	var input models.FormationInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}

	formation, err := h.gw.Formations.Create(c.UserContext(), h.currentSession(c).Auth(), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:formations:published")
	return c.Status(fiber.StatusCreated).JSON(formation)
}

func (h *Handlers) AdminUpdateFormation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	var input models.FormationInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}

	formation, err := h.gw.Formations.Update(c.UserContext(), h.currentSession(c).Auth(), id, input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:formations:published")
	return c.JSON(formation)
}

func (h *Handlers) AdminDeleteFormation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := h.gw.Formations.Delete(c.UserContext(), h.currentSession(c).Auth(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:formations:published")
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handlers) AdminFormationStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	status, err := statusFromBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := h.gw.Formations.SetStatus(c.UserContext(), h.currentSession(c).Auth(), id, status); err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:formations:published")
	return c.JSON(fiber.Map{"ok": true, "status": status})
}

// --- Portfolios ---

func (h *Handlers) AdminPortfolios(c *fiber.Ctx) error {
	ctx := c.UserContext()
	auth := h.currentSession(c).Auth()

	projects, err := h.gw.Portfolio.List(ctx, auth, c.Query("status"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	viewPrefs, page := h.listState(c, "admin-portfolios")
	result, page := paginate(projects, filtersFrom(viewPrefs), page, defaultPageSize)

	return c.JSON(fiber.Map{
		"page":         "admin-portfolios",
		"items":        result.Items,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": page,
		"markers":      markerView(page, result.TotalPages),
		"preferences":  viewPrefs,
		"no_results":   result.Total == 0,
	})
}

func (h *Handlers) AdminGetPortfolio(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	project, err := h.gw.Portfolio.Get(c.UserContext(), h.currentSession(c).Auth(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(project)
}

func (h *Handlers) AdminCreatePortfolio(c *fiber.Ctx) error {
	var input models.PortfolioInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}

	project, err := h.gw.Portfolio.Create(c.UserContext(), h.currentSession(c).Auth(), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:portfolio:published")
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *Handlers) AdminUpdatePortfolio(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	var input models.PortfolioInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}

	project, err := h.gw.Portfolio.Update(c.UserContext(), h.currentSession(c).Auth(), id, input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:portfolio:published")
	return c.JSON(project)
}

func (h *Handlers) AdminDeletePortfolio(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := h.gw.Portfolio.Delete(c.UserContext(), h.currentSession(c).Auth(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:portfolio:published")
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handlers) AdminPortfolioStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	status, err := statusFromBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := h.gw.Portfolio.SetStatus(c.UserContext(), h.currentSession(c).Auth(), id, status); err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:portfolio:published")
	return c.JSON(fiber.Map{"ok": true, "status": status})
}

// --- Users ---

func (h *Handlers) AdminUsers(c *fiber.Ctx) error {
	users, err := h.gw.Users.List(c.UserContext(), h.currentSession(c).Auth())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":  "admin-users",
		"items": users,
		"total": len(users),
	})
}

func (h *Handlers) AdminGetUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	user, err := h.gw.Users.Get(c.UserContext(), h.currentSession(c).Auth(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

func (h *Handlers) AdminCreateUser(c *fiber.Ctx) error {
	var input models.UserInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := h.gw.Users.Create(c.UserContext(), h.currentSession(c).Auth(), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *Handlers) AdminUpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	var input models.UserInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}

	sess := h.currentSession(c)
	user, err := h.gw.Users.Update(c.UserContext(), sess.Auth(), id, input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	// Editing your own account updates the cached session user too.
	if sess.User != nil && sess.User.ID == id {
		h.sessions.UpdateUser(c.UserContext(), sess.SID, user)
	}
	return c.JSON(user)
}

func (h *Handlers) AdminDeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	sess := h.currentSession(c)
	if sess.User != nil && sess.User.ID == id {
		return models.RespondWithError(c, models.NewValidationError("You cannot delete your own account"))
	}
	if err := h.gw.Users.Delete(c.UserContext(), sess.Auth(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handlers) AdminUserRole(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	switch body.Role {
	case models.RoleAdmin, models.RoleEditor, models.RoleUser:
	default:
		return models.RespondWithError(c, models.NewValidationError("Unknown role "+strconv.Quote(body.Role)))
	}

	if err := h.gw.Users.SetRole(c.UserContext(), h.currentSession(c).Auth(), id, body.Role); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "role": body.Role})
}

// --- Comments moderation ---

func (h *Handlers) AdminComments(c *fiber.Ctx) error {
	comments, err := h.gw.Comments.List(c.UserContext(), h.currentSession(c).Auth())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":  "admin-comments",
		"items": comments,
		"total": len(comments),
	})
}

func (h *Handlers) AdminDeleteComment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := h.gw.Comments.Delete(c.UserContext(), h.currentSession(c).Auth(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handlers) AdminCommentStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	status, err := statusFromBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := h.gw.Comments.SetStatus(c.UserContext(), h.currentSession(c).Auth(), id, status); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "status": status})
}

// --- Settings ---

func (h *Handlers) AdminSettings(c *fiber.Ctx) error {
	settings, err := h.gw.Settings.List(c.UserContext(), h.currentSession(c).Auth())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":     "admin-settings",
		"settings": settings,
	})
}

func (h *Handlers) AdminUpdateSetting(c *fiber.Ctx) error {
	var input models.SettingInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := input.Validate(); err != nil {
		return models.RespondWithError(c, err)
	}

	setting, err := h.gw.Settings.Update(c.UserContext(), h.currentSession(c).Auth(), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:settings")
	return c.JSON(setting)
}

func (h *Handlers) AdminBulkUpdateSettings(c *fiber.Ctx) error {
	var body struct {
		Settings []models.SettingInput `json:"settings"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if len(body.Settings) == 0 {
		return models.RespondWithError(c, models.NewValidationError("Settings are required"))
	}
	for _, s := range body.Settings {
		if err := s.Validate(); err != nil {
			return models.RespondWithError(c, err)
		}
	}

	updated, err := h.gw.Settings.BulkUpdate(c.UserContext(), h.currentSession(c).Auth(), body.Settings)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	h.invalidate("cache:settings")
	return c.JSON(fiber.Map{"settings": updated})
}

func statusFromBody(c *fiber.Ctx) (string, error) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return "", models.NewValidationError("Invalid request body")
	}
	switch body.Status {
	case models.StatusDraft, models.StatusPublished, models.StatusArchived:
		return body.Status, nil
	default:
		return "", models.NewValidationError("Unknown status " + strconv.Quote(body.Status))
	}
}

// invalidate drops a public-page cache entry after an admin mutation.
func (h *Handlers) invalidate(key string) {
	if err := h.cache.Delete(context.Background(), key); err != nil {
		h.logger.Warn("cache invalidation failed", "key", key, "error", err.Error())
	}
}
