// Package handlers contains the HTTP handlers for the public site, the
// auth flow and the admin back-office. Handlers assemble view models from
// upstream data; persistence and business rules live behind the gateway.
package handlers

import (
	"log/slog"
	"time"

	"vitrine/authflow"
	"vitrine/config"
	"vitrine/gateway"
	"vitrine/middleware"
	"vitrine/prefs"
	"vitrine/session"
	"vitrine/store"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds all dependencies and provides the route handlers.
type Handlers struct {
	cfg      *config.Config
	gw       *gateway.Client
	sessions *session.Manager
	flow     *authflow.Controller
	prefs    *prefs.Store
	cache    store.Store
	cacheTTL time.Duration
	logger   *slog.Logger
}

// New wires the handler set and registers the gated-action executor on the
// auth flow controller.
func New(cfg *config.Config, gw *gateway.Client, sessions *session.Manager, flow *authflow.Controller, prefStore *prefs.Store, cache store.Store, logger *slog.Logger) *Handlers {
	h := &Handlers{
		cfg:      cfg,
		gw:       gw,
		sessions: sessions,
		flow:     flow,
		prefs:    prefStore,
		cache:    cache,
		cacheTTL: time.Duration(cfg.CacheTTLSeconds) * time.Second,
		logger:   logger,
	}
	flow.SetExecutor(&gatedExecutor{gw: gw})
	return h
}

// sid returns the request's session ID set by the cookie middleware.
func (h *Handlers) sid(c *fiber.Ctx) string {
	sid, _ := c.Locals(middleware.LocalSID).(string)
	return sid
}

// currentSession reads the session without an upstream refresh. Guarded
// routes get the refreshed session from their guard instead.
func (h *Handlers) currentSession(c *fiber.Ctx) session.Session {
	if sess, ok := c.Locals(middleware.LocalSession).(session.Session); ok {
		return sess
	}
	return h.sessions.Current(c.UserContext(), h.sid(c))
}

// NotFound is the fallback for the whole route surface.
func (h *Handlers) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"page":  "not-found",
		"error": "Page not found",
	})
}
