package handlers

import (
	"vitrine/listview"
	"vitrine/prefs"

	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 9

// listState resolves the filter/search/sort state for a named collection:
// persisted preferences, overridden by any query parameters present on the
// request. Overrides are persisted immediately (written on every change)
// and reset the page to 1, since the previous page number is meaningless
// under new filters.
func (h *Handlers) listState(c *fiber.Ctx, collection string) (prefs.ViewPreferences, int) {
	ctx := c.UserContext()
	sid := h.sid(c)

	args := c.Request().URI().QueryArgs()
	patch := prefs.Patch{}

	if args.Has("search") {
		v := c.Query("search")
		patch.SearchQuery = &v
	}
	if args.Has("sort") {
		v := c.Query("sort")
		patch.SortOrder = &v
	}
	if args.Has("view") {
		v := c.Query("view")
		patch.ViewMode = &v
	}
	if args.Has("category") {
		values := multiQuery(c, "category")
		patch.SelectedCategories = &values
	}
	if args.Has("technology") {
		values := multiQuery(c, "technology")
		patch.SelectedTechnologies = &values
	}

	page := c.QueryInt("page", 1)
	if !patch.IsEmpty() {
		updated, err := h.prefs.Update(ctx, sid, collection, patch)
		if err == nil {
			return updated, 1
		}
		// Preference write failed: still honor the override for this
		// request so the page the user sees matches what they asked for.
		h.logger.Warn("preference write failed", "collection", collection, "error", err.Error())
		return updated, 1
	}

	return h.prefs.Load(ctx, sid, collection), page
}

func multiQuery(c *fiber.Ctx, key string) []string {
	raw := c.Request().URI().QueryArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, b := range raw {
		if len(b) > 0 {
			values = append(values, string(b))
		}
	}
	return values
}

func filtersFrom(p prefs.ViewPreferences) listview.Filters {
	return listview.Filters{
		Categories:   p.SelectedCategories,
		Technologies: p.SelectedTechnologies,
		Search:       p.SearchQuery,
		Sort:         p.SortOrder,
	}
}

// paginate runs the engine and applies the caller-side clamp: a requested
// page beyond the filtered result resets to page 1.
func paginate[T listview.Item](items []T, f listview.Filters, page, pageSize int) (listview.Page[T], int) {
	result := listview.VisiblePage(items, f, page, pageSize)
	if page < 1 || (result.TotalPages > 0 && page > result.TotalPages) {
		page = 1
		result = listview.VisiblePage(items, f, page, pageSize)
	}
	return result, page
}

// markerView maps the marker sequence to a renderable form; gaps become
// non-clickable ellipsis entries.
func markerView(current, total int) []fiber.Map {
	markers := listview.PageMarkers(current, total)
	view := make([]fiber.Map, 0, len(markers))
	for _, m := range markers {
		if m == listview.Gap {
			view = append(view, fiber.Map{"ellipsis": true})
			continue
		}
		view = append(view, fiber.Map{"page": m, "current": m == current})
	}
	return view
}
