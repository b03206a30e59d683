// Package session holds the per-browser-session authentication state: the
// upstream API token and the cached user it belongs to, stored together as
// one record so no reader ever sees a token without its matching user.
package session

import (
	"context"
	"log/slog"
	"time"

	"vitrine/gateway"
	"vitrine/models"
	"vitrine/store"
)

// refreshInterval bounds how stale the cached user may get before a guarded
// request re-fetches it from the token.
const refreshInterval = 5 * time.Minute

// Session is the authentication state of one browser session. The zero
// value is logged out.
type Session struct {
	SID         string       `json:"-"`
	Token       string       `json:"token"`
	User        *models.User `json:"user"`
	RefreshedAt time.Time    `json:"refreshed_at"`
}

// IsAuthenticated is true iff a token is present. It does not prove the
// token is still valid server-side; API calls reveal that.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == models.RoleAdmin
}

// Gateway credentials for this session.
func (s Session) Auth() gateway.Auth {
	return gateway.Auth{SID: s.SID, Token: s.Token}
}

// Manager owns session records in the durable store.
type Manager struct {
	store  store.Store
	gw     *gateway.Client
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

func NewManager(s store.Store, gw *gateway.Client, secret string, ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		store:  s,
		gw:     gw,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

func sessionKey(sid string) string {
	return "session:" + sid
}

// Current reads the session record. Absent or malformed data degrades to a
// logged-out session, never an error.
func (m *Manager) Current(ctx context.Context, sid string) Session {
	sess := Session{SID: sid}
	if sid == "" {
		return sess
	}
	found, err := store.GetJSON(ctx, m.store, sessionKey(sid), &sess)
	if err != nil {
		m.logger.Warn("session read failed", slog.String("sid", sid), slog.String("error", err.Error()))
		return Session{SID: sid}
	}
	if !found {
		return Session{SID: sid}
	}
	sess.SID = sid
	return sess
}

// save persists the token/user pair as one snapshot.
func (m *Manager) save(ctx context.Context, sess Session) error {
	return store.SetJSON(ctx, m.store, sessionKey(sess.SID), sess, m.ttl)
}

// Login exchanges credentials for a token via the upstream API and persists
// the resulting session.
func (m *Manager) Login(ctx context.Context, sid string, req models.LoginRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	creds, err := m.gw.Auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	user := creds.User
	sess := Session{SID: sid, Token: creds.Token, User: &user, RefreshedAt: time.Now()}
	if err := m.save(ctx, sess); err != nil {
		return nil, models.NewServerRejectedError("Could not persist session")
	}
	return &user, nil
}

// Register creates an account upstream and logs the session in.
func (m *Manager) Register(ctx context.Context, sid string, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	creds, err := m.gw.Auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	user := creds.User
	sess := Session{SID: sid, Token: creds.Token, User: &user, RefreshedAt: time.Now()}
	if err := m.save(ctx, sess); err != nil {
		return nil, models.NewServerRejectedError("Could not persist session")
	}
	return &user, nil
}

// Logout clears the session unconditionally. It has no failure mode: a
// storage error leaves nothing worse than an orphaned record that expires.
func (m *Manager) Logout(ctx context.Context, sid string) {
	if sid == "" {
		return
	}
	if err := m.store.Delete(ctx, sessionKey(sid)); err != nil {
		m.logger.Warn("session delete failed", slog.String("sid", sid), slog.String("error", err.Error()))
	}
}

// Invalidate is the gateway's unauthorized hook: any upstream 401 clears
// the session it was issued for.
func (m *Manager) Invalidate(ctx context.Context, sid string) {
	m.Logout(ctx, sid)
}

// Refresh resolves the session before any allow/deny decision: when a token
// is present and the cached user is missing or stale, the user is re-fetched
// from the token. An unauthorized answer clears the session (treat as
// logged out).
func (m *Manager) Refresh(ctx context.Context, sid string) Session {
	sess := m.Current(ctx, sid)
	if !sess.IsAuthenticated() {
		return sess
	}
	if sess.User != nil && time.Since(sess.RefreshedAt) < refreshInterval {
		return sess
	}

	user, err := m.gw.Auth.Me(ctx, sess.Auth())
	if err != nil {
		if models.IsUnauthorized(err) {
			// The gateway hook already cleared the record.
			return Session{SID: sid}
		}
		// Upstream unreachable: keep the cached pair rather than logging
		// the user out over a transient failure.
		return sess
	}

	sess.User = user
	sess.RefreshedAt = time.Now()
	if err := m.save(ctx, sess); err != nil {
		m.logger.Warn("session refresh persist failed", slog.String("sid", sid), slog.String("error", err.Error()))
	}
	return sess
}

// ForgotPassword relays a reset-link request; no session state changes.
func (m *Manager) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	return m.gw.Auth.ForgotPassword(ctx, req)
}

// ResetPassword completes a password reset. The user signs in afterwards;
// the reset itself does not authenticate the session.
func (m *Manager) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return m.gw.Auth.ResetPassword(ctx, req)
}

// UpdateUser replaces the cached user after a profile update, keeping the
// token/user pair atomic.
func (m *Manager) UpdateUser(ctx context.Context, sid string, user *models.User) {
	sess := m.Current(ctx, sid)
	if !sess.IsAuthenticated() {
		return
	}
	sess.User = user
	sess.RefreshedAt = time.Now()
	if err := m.save(ctx, sess); err != nil {
		m.logger.Warn("session user update failed", slog.String("sid", sid), slog.String("error", err.Error()))
	}
}
