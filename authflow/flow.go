// Package authflow drives the login/register/password-reset flow and the
// deferred-action protocol: a gated action attempted while logged out is
// captured, the auth dialog takes over, and the action runs exactly once
// after a successful authentication.
package authflow

import (
	"context"
	"log/slog"

	"vitrine/models"
	"vitrine/session"
	"vitrine/store"
)

// Flow modes. Switching modes is stateless here; the client clears its
// form when it swaps dialogs.
const (
	ModeLogin          = "login"
	ModeRegister       = "register"
	ModeForgotPassword = "forgot-password"
	ModeResetPassword  = "reset-password"
)

// Deferred action kinds.
const (
	ActionComment = "comment"
	ActionReply   = "reply"
	ActionLike    = "like"
	ActionReport  = "report"
)

// DeferredAction is a captured gated action awaiting authentication. At
// most one is pending per session; a later attempt overwrites an earlier
// one (the dialog only fronts one action at a time).
type DeferredAction struct {
	Kind      string `json:"kind"`
	ArticleID uint   `json:"article_id,omitempty"`
	CommentID uint   `json:"comment_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

// Executor runs a deferred action once the session is authenticated.
type Executor interface {
	Execute(ctx context.Context, sess session.Session, action DeferredAction) error
}

// SubmitForm is the auth dialog's form payload across all modes.
type SubmitForm struct {
	Name                 string `json:"name,omitempty"`
	Email                string `json:"email,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
	Token                string `json:"token,omitempty"`
}

// Controller coordinates auth submissions with the deferred-action slot.
type Controller struct {
	sessions *session.Manager
	store    store.Store
	executor Executor
	logger   *slog.Logger
}

func NewController(sessions *session.Manager, s store.Store, logger *slog.Logger) *Controller {
	return &Controller{sessions: sessions, store: s, logger: logger}
}

// SetExecutor wires the gated-action executor after construction.
func (c *Controller) SetExecutor(e Executor) {
	c.executor = e
}

func actionKey(sid string) string {
	return "deferred:" + sid
}

// WithAuth runs action immediately when the session is authenticated.
// Otherwise it stores the action as the single pending deferred action and
// reports deferred=true so the handler can open the auth dialog; nothing
// executes before a successful authentication.
func (c *Controller) WithAuth(ctx context.Context, sid string, action DeferredAction) (deferred bool, err error) {
	sess := c.sessions.Current(ctx, sid)
	if sess.IsAuthenticated() {
		return false, c.executor.Execute(ctx, sess, action)
	}

	// Last-attempt-wins: a second gated attempt replaces the first.
	if err := store.SetJSON(ctx, c.store, actionKey(sid), action, c.sessions.TTL()); err != nil {
		return false, models.NewServerRejectedError("Could not save pending action")
	}
	return true, nil
}

// Pending returns the deferred action awaiting authentication, if any.
func (c *Controller) Pending(ctx context.Context, sid string) (DeferredAction, bool) {
	var action DeferredAction
	found, err := store.GetJSON(ctx, c.store, actionKey(sid), &action)
	if err != nil || !found {
		return DeferredAction{}, false
	}
	return action, true
}

// Cancel discards the pending deferred action silently. Called when the
// user closes the auth dialog without signing in.
func (c *Controller) Cancel(ctx context.Context, sid string) {
	if err := c.store.Delete(ctx, actionKey(sid)); err != nil {
		c.logger.Warn("deferred action discard failed", slog.String("sid", sid), slog.String("error", err.Error()))
	}
}

// Submit handles one auth dialog submission. Login and Register return the
// signed-in user and then run the pending deferred action exactly once;
// the password modes complete without touching the session.
func (c *Controller) Submit(ctx context.Context, sid, mode string, form SubmitForm) (*models.User, *DeferredAction, error) {
	switch mode {
	case ModeLogin:
		user, err := c.sessions.Login(ctx, sid, models.LoginRequest{
			Email:    form.Email,
			Password: form.Password,
		})
		if err != nil {
			return nil, nil, err
		}
		resumed := c.resume(ctx, sid)
		return user, resumed, nil

	case ModeRegister:
		user, err := c.sessions.Register(ctx, sid, models.RegisterRequest{
			Name:                 form.Name,
			Email:                form.Email,
			Password:             form.Password,
			PasswordConfirmation: form.PasswordConfirmation,
		})
		if err != nil {
			return nil, nil, err
		}
		resumed := c.resume(ctx, sid)
		return user, resumed, nil

	case ModeForgotPassword:
		req := models.ForgotPasswordRequest{Email: form.Email}
		if err := req.Validate(); err != nil {
			return nil, nil, err
		}
		return nil, nil, c.sessions.ForgotPassword(ctx, req)

	case ModeResetPassword:
		req := models.ResetPasswordRequest{
			Token:                form.Token,
			Password:             form.Password,
			PasswordConfirmation: form.PasswordConfirmation,
		}
		if err := req.Validate(); err != nil {
			return nil, nil, err
		}
		return nil, nil, c.sessions.ResetPassword(ctx, req)

	default:
		return nil, nil, models.NewValidationError("Unknown auth mode")
	}
}

// resume pops and executes the pending deferred action, if any. The slot
// is cleared before execution so the action can never run twice, even when
// execution itself fails.
func (c *Controller) resume(ctx context.Context, sid string) *DeferredAction {
	action, found := c.Pending(ctx, sid)
	if !found {
		return nil
	}
	c.Cancel(ctx, sid)

	sess := c.sessions.Current(ctx, sid)
	if !sess.IsAuthenticated() {
		return nil
	}
	if err := c.executor.Execute(ctx, sess, action); err != nil {
		c.logger.Warn("deferred action failed",
			slog.String("sid", sid),
			slog.String("kind", action.Kind),
			slog.String("error", err.Error()))
		return nil
	}
	return &action
}
