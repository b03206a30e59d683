package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vitrine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantErrMsg string
	}{
		{
			name:       "server rejection carries upstream message",
			status:     http.StatusUnprocessableEntity,
			body:       `{"message":"Title already taken"}`,
			wantCode:   models.CodeServerRejected,
			wantErrMsg: "Title already taken",
		},
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"message":"Token expired"}`,
			wantCode: models.CodeUnauthorized,
		},
		{
			name:     "server error without message",
			status:   http.StatusInternalServerError,
			body:     `boom`,
			wantCode: models.CodeServerRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer upstream.Close()

			client := New(upstream.URL)
			_, err := client.Articles.List(context.Background(), Auth{SID: "s", Token: "t"}, "")

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, models.CodeOf(err))
			if tt.wantErrMsg != "" {
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErrMsg, appErr.Message)
			}
		})
	}
}

func TestUnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing listening anymore

	client := New(upstream.URL)
	_, err := client.Articles.List(context.Background(), Public, "")

	require.Error(t, err)
	assert.Equal(t, models.CodeUnreachable, models.CodeOf(err))
}

func TestUnauthorizedTriggersHook(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer upstream.Close()

	client := New(upstream.URL)
	var hookSID string
	client.OnUnauthorized = func(_ context.Context, sid string) { hookSID = sid }

	_, err := client.Auth.Me(context.Background(), Auth{SID: "sid-1", Token: "stale"})

	require.Error(t, err)
	assert.Equal(t, "sid-1", hookSID)
}

func TestUnauthorizedWithoutSessionSkipsHook(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer upstream.Close()

	client := New(upstream.URL)
	called := false
	client.OnUnauthorized = func(_ context.Context, _ string) { called = true }

	_, err := client.Articles.List(context.Background(), Public, "")

	require.Error(t, err)
	assert.False(t, called)
}

func TestEnvelopeDecoding(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": 1, "title": "Hello"}},
		})
	}))
	defer upstream.Close()

	client := New(upstream.URL)
	articles, err := client.Articles.List(context.Background(), Public, models.StatusPublished)

	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, uint(1), articles[0].ID)
	assert.Equal(t, "Hello", articles[0].Title)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": 7, "name": "Ada"}})
	}))
	defer upstream.Close()

	client := New(upstream.URL)
	user, err := client.Auth.Me(context.Background(), Auth{SID: "s", Token: "tok-123"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, uint(7), user.ID)
}
