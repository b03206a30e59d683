package middleware

import (
	"net/url"

	"vitrine/session"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the middleware below.
const (
	LocalSID     = "sid"
	LocalSession = "session"
)

// SessionCookie ensures every request carries a session identity. A missing
// or tampered cookie gets a fresh session ID rather than an error.
func SessionCookie(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ""
		if raw := c.Cookies(session.CookieName); raw != "" {
			if parsed, err := mgr.ParseSID(raw); err == nil {
				sid = parsed
			}
		}
		if sid == "" {
			sid = session.NewSID()
			if signed, err := mgr.SignSID(sid); err == nil {
				c.Cookie(&fiber.Cookie{
					Name:     session.CookieName,
					Value:    signed,
					HTTPOnly: true,
					SameSite: fiber.CookieSameSiteLaxMode,
					MaxAge:   int(mgr.TTL().Seconds()),
				})
			}
		}
		c.Locals(LocalSID, sid)
		return c.Next()
	}
}

// AuthGuard gates a route on authentication. The session is fully resolved
// (user refreshed from the token) before any allow/deny decision, so no
// denied response can race ahead of initialization. Denied requests
// redirect to the login page, remembering the requested location.
func AuthGuard(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid, _ := c.Locals(LocalSID).(string)
		sess := mgr.Refresh(c.UserContext(), sid)

		if !sess.IsAuthenticated() {
			return redirectToLogin(c)
		}

		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// AdminGuard gates a route on authentication plus the admin role. A signed
// in user lacking the role is sent to the public home page, not to login.
func AdminGuard(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid, _ := c.Locals(LocalSID).(string)
		sess := mgr.Refresh(c.UserContext(), sid)

		if !sess.IsAuthenticated() {
			return redirectToLogin(c)
		}
		if !sess.IsAdmin() {
			return c.Redirect("/", fiber.StatusFound)
		}

		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

func redirectToLogin(c *fiber.Ctx) error {
	target := "/auth/login?return_to=" + url.QueryEscape(c.OriginalURL())
	return c.Redirect(target, fiber.StatusFound)
}

// CurrentSession returns the session resolved by a guard, or an empty one.
func CurrentSession(c *fiber.Ctx) session.Session {
	if sess, ok := c.Locals(LocalSession).(session.Session); ok {
		return sess
	}
	sid, _ := c.Locals(LocalSID).(string)
	return session.Session{SID: sid}
}
