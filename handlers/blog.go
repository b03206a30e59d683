package handlers

import (
	"vitrine/gateway"
	"vitrine/models"
	"vitrine/store"

	"github.com/gofiber/fiber/v2"
)

// BlogIndex renders the blog collection through the persisted view
// preferences and the list engine. An empty filtered result is reported
// explicitly so the client can tell "no results" from "still loading".
func (h *Handlers) BlogIndex(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var articles []models.Article
	err := store.CacheAside(ctx, h.cache, "cache:articles:published", &articles, h.cacheTTL, func() error {
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

	viewPrefs, page := h.listState(c, "blog")
	result, page := paginate(articles, filtersFrom(viewPrefs), page, defaultPageSize)

	return c.JSON(fiber.Map{
		"page":         "blog",
		"items":        result.Items,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": page,
		"markers":      markerView(page, result.TotalPages),
		"preferences":  viewPrefs,
		"no_results":   result.Total == 0,
	})
}

// BlogArticle renders one article with its comment tree. Caller
// credentials ride along so the upstream can mark the comments the
// current user has liked.
func (h *Handlers) BlogArticle(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sess := h.currentSession(c)

	article, err := h.gw.Articles.Get(ctx, gateway.Public, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	comments, err := h.gw.Comments.ListByArticle(ctx, sess.Auth(), article.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"page":          "blog-article",
		"article":       article,
		"comments":      comments,
		"authenticated": sess.IsAuthenticated(),
	})
}

// Portfolio renders the portfolio collection with its own preference key,
// including the technology facet articles lack.
func (h *Handlers) Portfolio(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var projects []models.PortfolioProject
	err := store.CacheAside(ctx, h.cache, "cache:portfolio:published", &projects, h.cacheTTL, func() error {
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

	viewPrefs, page := h.listState(c, "portfolio")
	result, page := paginate(projects, filtersFrom(viewPrefs), page, defaultPageSize)

	return c.JSON(fiber.Map{
		"page":         "portfolio",
		"items":        result.Items,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": page,
		"markers":      markerView(page, result.TotalPages),
		"preferences":  viewPrefs,
		"no_results":   result.Total == 0,
	})
}
