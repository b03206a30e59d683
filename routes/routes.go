// Package routes wires the client-visible route surface: public pages,
// the auth flow, gated comment actions and the admin back-office.
package routes

import (
	"time"

	"vitrine/authflow"
	"vitrine/handlers"
	"vitrine/middleware"
	"vitrine/session"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Setup registers every route on the app. rdb may be nil; rate limiting
// fails open without Redis.
func Setup(app *fiber.App, h *handlers.Handlers, sessions *session.Manager, rdb *redis.Client) {
	// Every route runs under a session identity.
	app.Use(middleware.SessionCookie(sessions))

	// Public pages
	app.Get("/", h.Home)
	app.Get("/services", h.Services)
	app.Get("/portfolio", h.Portfolio)
	app.Get("/formation", h.Formations)
	app.Get("/about", h.About)
	app.Get("/blog", h.BlogIndex)
	app.Get("/blog/:slug", h.BlogArticle)
	app.Get("/contact", h.ContactPage)
	app.Post("/contact", middleware.RateLimit(rdb, 5, time.Minute, "contact"), h.ContactSubmit)

	// Auth flow
	auth := app.Group("/auth")
	auth.Get("/login", h.AuthPage(authflow.ModeLogin))
	auth.Post("/login", h.Submit(authflow.ModeLogin))
	auth.Get("/register", h.AuthPage(authflow.ModeRegister))
	auth.Post("/register", h.Submit(authflow.ModeRegister))
	auth.Get("/forgot-password", h.AuthPage(authflow.ModeForgotPassword))
	auth.Post("/forgot-password", h.Submit(authflow.ModeForgotPassword))
	auth.Get("/reset-password/:token", h.ResetPasswordPage)
	auth.Post("/reset-password/:token", h.Submit(authflow.ModeResetPassword))
	auth.Post("/logout", h.Logout)
	auth.Post("/cancel", h.CancelAuth)
	auth.Get("/me", h.Me)

	// Gated comment actions; authentication is handled by the deferred
	// action protocol, not a guard.
	commentLimit := middleware.RateLimit(rdb, 10, time.Minute, "comments")
	app.Post("/blog/:slug/comments", commentLimit, h.SubmitComment)
	app.Post("/comments/:id/reply", commentLimit, h.ReplyComment)
	app.Post("/comments/:id/like", h.LikeComment)
	app.Post("/comments/:id/report", h.ReportComment)

	// Per-collection view preferences
	app.Get("/preferences/:key", h.GetPreferences)
	app.Patch("/preferences/:key", h.PatchPreferences)

	// Admin back-office
	admin := app.Group("/admin", middleware.AdminGuard(sessions))
	admin.Get("/", h.Dashboard)

	admin.Get("/articles", h.AdminArticles)
	admin.Post("/articles", h.AdminCreateArticle)
	admin.Get("/articles/:id", h.AdminGetArticle)
	admin.Put("/articles/:id", h.AdminUpdateArticle)
	admin.Delete("/articles/:id", h.AdminDeleteArticle)
	admin.Patch("/articles/:id/status", h.AdminArticleStatus)

	admin.Get("/formations", h.AdminFormations)
	admin.Post("/formations", h.AdminCreateFormation)
	admin.Get("/formations/:id", h.AdminGetFormation)
	admin.Put("/formations/:id", h.AdminUpdateFormation)
	admin.Delete("/formations/:id", h.AdminDeleteFormation)
	admin.Patch("/formations/:id/status", h.AdminFormationStatus)

	admin.Get("/portfolios", h.AdminPortfolios)
	admin.Post("/portfolios", h.AdminCreatePortfolio)
	admin.Get("/portfolios/:id", h.AdminGetPortfolio)
	admin.Put("/portfolios/:id", h.AdminUpdatePortfolio)
	admin.Delete("/portfolios/:id", h.AdminDeletePortfolio)
	admin.Patch("/portfolios/:id/status", h.AdminPortfolioStatus)

	admin.Get("/users", h.AdminUsers)
	admin.Post("/users", h.AdminCreateUser)
	admin.Get("/users/:id", h.AdminGetUser)
	admin.Put("/users/:id", h.AdminUpdateUser)
	admin.Delete("/users/:id", h.AdminDeleteUser)
	admin.Patch("/users/:id/role", h.AdminUserRole)

	admin.Get("/comments", h.AdminComments)
	admin.Delete("/comments/:id", h.AdminDeleteComment)
	admin.Patch("/comments/:id/status", h.AdminCommentStatus)

	admin.Get("/settings", h.AdminSettings)
	admin.Put("/settings", h.AdminUpdateSetting)
	admin.Put("/settings/bulk", h.AdminBulkUpdateSettings)

	// Fallback
	app.Use(h.NotFound)
}
