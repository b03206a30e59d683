package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vitrine/gateway"
	"vitrine/models"
	"vitrine/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUpstream emulates the auth endpoints of the API server.
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"token": "tok-valid",
			"user":  models.User{ID: 1, Name: "Ada", Email: req.Email, Role: models.RoleAdmin},
		}})
	})
	mux.HandleFunc("GET /auth/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": models.User{
			ID: 1, Name: "Ada Updated", Email: "ada@example.com", Role: models.RoleAdmin,
		}})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestManager(t *testing.T) (*Manager, store.Store) {
	t.Helper()
	kv := store.NewMemory()
	gw := gateway.New(fakeUpstream(t).URL)
	mgr := NewManager(kv, gw, "test-secret", time.Hour, testLogger())
	gw.OnUnauthorized = mgr.Invalidate
	return mgr, kv
}

func TestLoginPersistsTokenAndUserTogether(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t)

	user, err := mgr.Login(ctx, "sid-1", models.LoginRequest{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	sess := mgr.Current(ctx, "sid-1")
	assert.True(t, sess.IsAuthenticated())
	assert.True(t, sess.IsAdmin())
	// Token and user live in one record: never one without the other.
	require.NotNil(t, sess.User)
	assert.Equal(t, "tok-valid", sess.Token)
	assert.Equal(t, uint(1), sess.User.ID)
}

func TestLoginFailureSurfacesUpstreamMessage(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t)

	_, err := mgr.Login(ctx, "sid-1", models.LoginRequest{Email: "ada@example.com", Password: "wrong"})

	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid credentials", appErr.Message)
	assert.False(t, mgr.Current(ctx, "sid-1").IsAuthenticated())
}

func TestLoginValidatesLocally(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t)

	_, err := mgr.Login(ctx, "sid-1", models.LoginRequest{})

	require.Error(t, err)
	assert.Equal(t, models.CodeValidationFailed, models.CodeOf(err))
}

func TestLogoutClearsUnconditionally(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t)

	_, err := mgr.Login(ctx, "sid-1", models.LoginRequest{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)

	mgr.Logout(ctx, "sid-1")

	sess := mgr.Current(ctx, "sid-1")
	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.User)
}

func TestCorruptRecordDegradesToLoggedOut(t *testing.T) {
	ctx := context.Background()
	mgr, kv := newTestManager(t)
	require.NoError(t, kv.Set(ctx, "session:sid-1", []byte("{broken"), 0))

	sess := mgr.Current(ctx, "sid-1")

	assert.False(t, sess.IsAuthenticated())
	assert.False(t, sess.IsAdmin())
}

func TestRefreshUpdatesStaleUser(t *testing.T) {
	ctx := context.Background()
	mgr, kv := newTestManager(t)

	// Seed a record old enough to force an upstream refresh.
	stale := Session{Token: "tok-valid", User: &models.User{ID: 1, Name: "Ada"}, RefreshedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, store.SetJSON(ctx, kv, "session:sid-1", stale, 0))

	sess := mgr.Refresh(ctx, "sid-1")

	require.NotNil(t, sess.User)
	assert.Equal(t, "Ada Updated", sess.User.Name)
}

func TestRefreshWithInvalidTokenLogsOut(t *testing.T) {
	ctx := context.Background()
	mgr, kv := newTestManager(t)

	stale := Session{Token: "tok-revoked", User: &models.User{ID: 1}, RefreshedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, store.SetJSON(ctx, kv, "session:sid-1", stale, 0))

	sess := mgr.Refresh(ctx, "sid-1")

	assert.False(t, sess.IsAuthenticated())
	assert.False(t, mgr.Current(ctx, "sid-1").IsAuthenticated())
}

func TestCookieSignParseRoundTrip(t *testing.T) {
	mgr, _ := newTestManager(t)

	sid := NewSID()
	signed, err := mgr.SignSID(sid)
	require.NoError(t, err)

	parsed, err := mgr.ParseSID(signed)
	require.NoError(t, err)
	assert.Equal(t, sid, parsed)
}

func TestTamperedCookieRejected(t *testing.T) {
	mgr, _ := newTestManager(t)

	signed, err := mgr.SignSID(NewSID())
	require.NoError(t, err)

	_, err = mgr.ParseSID(signed + "x")
	assert.Error(t, err)

	_, err = mgr.ParseSID("garbage")
	assert.Error(t, err)
}
