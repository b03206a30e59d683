package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"vitrine/authflow"
	"vitrine/config"
	"vitrine/gateway"
	"vitrine/middleware"
	"vitrine/models"
	"vitrine/prefs"
	"vitrine/session"
	"vitrine/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI emulates the upstream REST API with in-memory comment state.
type fakeAPI struct {
	mu       sync.Mutex
	comments []models.Comment
	articles []models.Article
}

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		articles: []models.Article{
			{ID: 1, Title: "React Advanced", Slug: "react-advanced", Excerpt: "hooks deep dive", Categories: []string{"frontend"}, Status: models.StatusPublished, CreatedAt: day(2)},
			{ID: 2, Title: "Vue Basics", Slug: "vue-basics", Excerpt: "getting started", Categories: []string{"frontend"}, Status: models.StatusPublished, CreatedAt: day(1)},
			{ID: 3, Title: "Go Services", Slug: "go-services", Excerpt: "building APIs", Categories: []string{"backend"}, Status: models.StatusPublished, CreatedAt: day(3)},
		},
		comments: []models.Comment{
			{ID: 10, ArticleID: 1, Content: "Nice article", Author: models.User{ID: 2, Name: "Bob"}, LikesCount: 5, IsLiked: false, CreatedAt: day(2)},
		},
	}
}

func (f *fakeAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	writeData := func(w http.ResponseWriter, v any) {
		json.NewEncoder(w).Encode(map[string]any{"data": v})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		writeData(w, map[string]any{
			"token": "tok-valid",
			"user":  models.User{ID: 7, Name: "Ada", Email: req.Email, Role: models.RoleUser},
		})
	})
	mux.HandleFunc("GET /auth/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeData(w, models.User{ID: 7, Name: "Ada", Role: models.RoleUser})
	})
	mux.HandleFunc("GET /articles", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, f.articles)
	})
	mux.HandleFunc("GET /articles/{slug}", func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		for _, a := range f.articles {
			if a.Slug == slug {
				writeData(w, a)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Article not found"})
	})
	mux.HandleFunc("GET /articles/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeData(w, f.comments)
	})
	mux.HandleFunc("POST /comments", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var input models.CommentInput
		json.NewDecoder(r.Body).Decode(&input)
		f.mu.Lock()
		comment := models.Comment{
			ID:        uint(100 + len(f.comments)),
			ArticleID: input.ArticleID,
			ParentID:  input.ParentID,
			Content:   input.Content,
			Author:    models.User{ID: 7, Name: "Ada"},
			CreatedAt: time.Now(),
		}
		f.comments = append(f.comments, comment)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		writeData(w, comment)
	})
	mux.HandleFunc("GET /comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, cm := range f.comments {
			writeData(w, cm)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("POST /comments/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		// Server-side toggle: the authoritative count, not client math.
		f.comments[0].IsLiked = !f.comments[0].IsLiked
		if f.comments[0].IsLiked {
			f.comments[0].LikesCount++
		} else {
			f.comments[0].LikesCount--
		}
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("GET /settings", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.Setting{{Key: "site_title", Value: "Vitrine"}})
	})
	mux.HandleFunc("GET /portfolio", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.PortfolioProject{})
	})
	mux.HandleFunc("GET /formations", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.Formation{})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// setupTestApp wires the full public route surface against a fake upstream.
func setupTestApp(t *testing.T) (*fiber.App, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	upstream := api.server(t)

	cfg := &config.Config{
		APIBaseURL:      upstream.URL,
		SessionSecret:   "test-secret",
		SessionTTLHours: 1,
		CacheTTLSeconds: 60,
	}
	kv := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := gateway.New(cfg.APIBaseURL)
	sessions := session.NewManager(kv, gw, cfg.SessionSecret, time.Hour, logger)
	gw.OnUnauthorized = sessions.Invalidate
	flow := authflow.NewController(sessions, kv, logger)
	prefStore := prefs.NewStore(kv, time.Hour)
	h := New(cfg, gw, sessions, flow, prefStore, kv, logger)

	app := fiber.New()
	app.Use(middleware.SessionCookie(sessions))
	app.Get("/blog", h.BlogIndex)
	app.Get("/blog/:slug", h.BlogArticle)
	app.Post("/blog/:slug/comments", h.SubmitComment)
	app.Post("/comments/:id/reply", h.ReplyComment)
	app.Post("/comments/:id/like", h.LikeComment)
	app.Post("/auth/login", h.Submit(authflow.ModeLogin))
	app.Post("/auth/cancel", h.CancelAuth)
	app.Get("/preferences/:key", h.GetPreferences)
	app.Patch("/preferences/:key", h.PatchPreferences)
	app.Use(h.NotFound)
	return app, api
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies []*http.Cookie) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestBlogIndexSearchFilters(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, "GET", "/blog?search=react", nil, nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "React Advanced", items[0].(map[string]any)["title"])
	assert.Equal(t, false, body["no_results"])
}

func TestBlogIndexNoResultsIsExplicit(t *testing.T) {
	app, _ := setupTestApp(t)

	_, body := doJSON(t, app, "GET", "/blog?search=nonexistent", nil, nil)

	assert.Equal(t, true, body["no_results"])
	assert.Equal(t, float64(0), body["total_pages"])
	assert.Empty(t, body["items"])
}

func TestBlogIndexOutOfRangePageResets(t *testing.T) {
	app, _ := setupTestApp(t)

	_, body := doJSON(t, app, "GET", "/blog?page=99", nil, nil)

	assert.Equal(t, float64(1), body["current_page"])
	assert.Len(t, body["items"].([]any), 3)
}

func TestBlogIndexPersistsPreferences(t *testing.T) {
	app, _ := setupTestApp(t)

	// First request sets the search; cookie identifies the session.
	resp, _ := doJSON(t, app, "GET", "/blog?search=react", nil, nil)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	// Second request without query params reuses the persisted search.
	_, body := doJSON(t, app, "GET", "/blog", nil, cookies)

	prefsOut := body["preferences"].(map[string]any)
	assert.Equal(t, "react", prefsOut["search_query"])
	assert.Len(t, body["items"].([]any), 1)
}

func TestFailedLoginKeepsMessageAndFormState(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/auth/login",
		map[string]string{"email": "ada@example.com", "password": "wrong"}, nil)

	// The upstream message passes through verbatim; the client keeps its
	// form fields since nothing instructs it to reset.
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])
	assert.Equal(t, models.CodeServerRejected, body["code"])
}

func TestGatedCommentDefersAndResumesAfterLogin(t *testing.T) {
	app, api := setupTestApp(t)

	// Logged out: the comment is captured, not executed.
	resp, body := doJSON(t, app, "POST", "/blog/react-advanced/comments",
		map[string]string{"content": "great read"}, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, true, body["login_required"])
	assert.Equal(t, "comment", body["pending"])
	assert.Len(t, api.comments, 1)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	// Login on the same session resumes the pending comment exactly once.
	resp, body = doJSON(t, app, "POST", "/auth/login",
		map[string]string{"email": "ada@example.com", "password": "secret"}, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "comment", body["resumed"])
	require.Len(t, api.comments, 2)
	assert.Equal(t, "great read", api.comments[1].Content)
}

func TestCancelledDialogDiscardsPendingAction(t *testing.T) {
	app, api := setupTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/blog/react-advanced/comments",
		map[string]string{"content": "lost on purpose"}, nil)
	cookies := resp.Cookies()

	_, _ = doJSON(t, app, "POST", "/auth/cancel", nil, cookies)

	resp, body := doJSON(t, app, "POST", "/auth/login",
		map[string]string{"email": "ada@example.com", "password": "secret"}, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_, resumed := body["resumed"]
	assert.False(t, resumed)
	assert.Len(t, api.comments, 1)
}

func TestEmptyCommentRejectedBeforeCapture(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/blog/react-advanced/comments",
		map[string]string{"content": "   "}, nil)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeValidationFailed, body["code"])
}

func TestLikeUsesAuthoritativeCount(t *testing.T) {
	app, api := setupTestApp(t)

	// Sign in first.
	resp, _ := doJSON(t, app, "POST", "/auth/login",
		map[string]string{"email": "ada@example.com", "password": "secret"}, nil)
	cookies := resp.Cookies()

	resp, body := doJSON(t, app, "POST", "/comments/10/like", nil, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The refetched comment list carries the server-computed count.
	comments := body["comments"].([]any)
	first := comments[0].(map[string]any)
	assert.Equal(t, true, first["is_liked"])
	assert.Equal(t, float64(6), first["likes_count"])
	assert.Equal(t, 6, api.comments[0].LikesCount)
}

func TestPreferencesEndpointRoundTrip(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, "PATCH", "/preferences/portfolio",
		map[string]any{"view_mode": "list", "selected_technologies": []string{"Go"}}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "list", body["view_mode"])

	cookies := resp.Cookies()
	_, body = doJSON(t, app, "GET", "/preferences/portfolio", nil, cookies)
	assert.Equal(t, "list", body["view_mode"])
	assert.Equal(t, []any{"Go"}, body["selected_technologies"])
}

func TestUnknownPreferenceKeyRejected(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/preferences/bogus", nil, nil)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNotFoundFallback(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, "GET", "/no-such-page", nil, nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not-found", body["page"])
}
