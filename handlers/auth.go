package handlers

import (
	"vitrine/authflow"
	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// AuthPage serves the view model for the login/register/forgot dialogs.
// Switching modes starts from a clean form; no state carries over.
func (h *Handlers) AuthPage(mode string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page":      "auth",
			"mode":      mode,
			"return_to": c.Query("return_to", "/"),
		})
	}
}

// ResetPasswordPage carries the reset token from the emailed link.
func (h *Handlers) ResetPasswordPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "auth",
		"mode":  authflow.ModeResetPassword,
		"token": c.Params("token"),
	})
}

// Submit handles a POST from any auth dialog mode. On login/register
// success the response carries the user and, when a deferred action was
// pending, the action that was resumed. Failure responses carry the
// upstream message verbatim; the client keeps its form state.
func (h *Handlers) Submit(mode string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form authflow.SubmitForm
		if err := c.BodyParser(&form); err != nil {
			return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
		}
		if mode == authflow.ModeResetPassword && form.Token == "" {
			form.Token = c.Params("token")
		}

		user, resumed, err := h.flow.Submit(c.UserContext(), h.sid(c), mode, form)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		resp := fiber.Map{"ok": true}
		if user != nil {
			resp["user"] = user
			resp["return_to"] = c.Query("return_to", "/")
		}
		if resumed != nil {
			resp["resumed"] = resumed.Kind
		}
		return c.JSON(resp)
	}
}

// Logout clears the session unconditionally.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.UserContext(), h.sid(c))
	return c.JSON(fiber.Map{"ok": true})
}

// CancelAuth discards the pending deferred action when the user closes the
// auth dialog. Silent: no error, no action taken.
func (h *Handlers) CancelAuth(c *fiber.Ctx) error {
	h.flow.Cancel(c.UserContext(), h.sid(c))
	return c.JSON(fiber.Map{"ok": true})
}

// Me reports the current session's user for the navigation chrome.
func (h *Handlers) Me(c *fiber.Ctx) error {
	sess := h.sessions.Refresh(c.UserContext(), h.sid(c))
	return c.JSON(fiber.Map{
		"authenticated": sess.IsAuthenticated(),
		"admin":         sess.IsAdmin(),
		"user":          sess.User,
	})
}
