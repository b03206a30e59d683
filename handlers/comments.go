package handlers

import (
	"context"
	"strings"

	"vitrine/authflow"
	"vitrine/gateway"
	"vitrine/models"
	"vitrine/session"

	"github.com/gofiber/fiber/v2"
)

// gatedExecutor runs deferred comment actions. Both the immediate path
// (already signed in) and the post-login resume go through here, so every
// action executes the same way exactly once.
type gatedExecutor struct {
	gw *gateway.Client
}

func (e *gatedExecutor) Execute(ctx context.Context, sess session.Session, action authflow.DeferredAction) error {
	auth := sess.Auth()
	switch action.Kind {
	case authflow.ActionComment:
		_, err := e.gw.Comments.Create(ctx, auth, models.CommentInput{
			ArticleID: action.ArticleID,
			Content:   action.Content,
		})
		return err
	case authflow.ActionReply:
		_, err := e.gw.Comments.Create(ctx, auth, models.CommentInput{
			ArticleID: action.ArticleID,
			ParentID:  action.CommentID,
			Content:   action.Content,
		})
		return err
	case authflow.ActionLike:
		return e.gw.Comments.ToggleLike(ctx, auth, action.CommentID)
	case authflow.ActionReport:
		return e.gw.Comments.Report(ctx, auth, action.CommentID)
	default:
		return models.NewValidationError("Unknown action")
	}
}

// runGated funnels one gated action through the auth flow. While logged
// out the action is captured and the client is told to open the login
// dialog; nothing executes. On immediate success the full comment list is
// refetched rather than spliced locally, keeping the tree consistent.
func (h *Handlers) runGated(c *fiber.Ctx, action authflow.DeferredAction) error {
	ctx := c.UserContext()
	sid := h.sid(c)

	deferred, err := h.flow.WithAuth(ctx, sid, action)
	if err != nil {
		// Failure does not clear the user's typed input; the client keeps
		// its form state and shows the message.
		return models.RespondWithError(c, err)
	}
	if deferred {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"login_required": true,
			"pending":        action.Kind,
		})
	}

	sess := h.sessions.Current(ctx, sid)
	comments, err := h.gw.Comments.ListByArticle(ctx, sess.Auth(), action.ArticleID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":       true,
		"action":   action.Kind,
		"comments": comments,
	})
}

// SubmitComment handles POST /blog/:slug/comments.
func (h *Handlers) SubmitComment(c *fiber.Ctx) error {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	content := strings.TrimSpace(body.Content)
	if content == "" {
		return models.RespondWithError(c, models.NewValidationError("Content is required"))
	}

	article, err := h.gw.Articles.Get(c.UserContext(), gateway.Public, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return h.runGated(c, authflow.DeferredAction{
		Kind:      authflow.ActionComment,
		ArticleID: article.ID,
		Content:   content,
	})
}

// ReplyComment handles POST /comments/:id/reply. Only one reply composer
// is open at a time client-side; the server just needs the parent.
func (h *Handlers) ReplyComment(c *fiber.Ctx) error {
	parentID, err := c.ParamsInt("id")
	if err != nil || parentID <= 0 {
		return models.RespondWithError(c, models.NewValidationError("Invalid comment ID"))
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	content := strings.TrimSpace(body.Content)
	if content == "" {
		return models.RespondWithError(c, models.NewValidationError("Content is required"))
	}

	parent, err := h.gw.Comments.Get(c.UserContext(), gateway.Public, uint(parentID))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return h.runGated(c, authflow.DeferredAction{
		Kind:      authflow.ActionReply,
		ArticleID: parent.ArticleID,
		CommentID: uint(parentID),
		Content:   content,
	})
}

// LikeComment handles POST /comments/:id/like. The toggle is a round trip;
// the authoritative count comes back with the refetched list, never from
// local arithmetic.
func (h *Handlers) LikeComment(c *fiber.Ctx) error {
	commentID, err := c.ParamsInt("id")
	if err != nil || commentID <= 0 {
		return models.RespondWithError(c, models.NewValidationError("Invalid comment ID"))
	}

	comment, err := h.gw.Comments.Get(c.UserContext(), gateway.Public, uint(commentID))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return h.runGated(c, authflow.DeferredAction{
		Kind:      authflow.ActionLike,
		ArticleID: comment.ArticleID,
		CommentID: uint(commentID),
	})
}

// ReportComment handles POST /comments/:id/report. Fire-and-forget beyond
// the success/failure response.
func (h *Handlers) ReportComment(c *fiber.Ctx) error {
	commentID, err := c.ParamsInt("id")
	if err != nil || commentID <= 0 {
		return models.RespondWithError(c, models.NewValidationError("Invalid comment ID"))
	}

	comment, err := h.gw.Comments.Get(c.UserContext(), gateway.Public, uint(commentID))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return h.runGated(c, authflow.DeferredAction{
		Kind:      authflow.ActionReport,
		ArticleID: comment.ArticleID,
		CommentID: uint(commentID),
	})
}
