// Package gateway is the typed client for the upstream REST API. One
// sub-client per resource; every call normalizes failures into the
// application error taxonomy so transport error shapes never reach
// handlers. Calls are fire-once, no retries.
package gateway

import (
	"context"
	"encoding/json"
	"time"

	"vitrine/models"

	"github.com/gofiber/fiber/v2"
)

// Auth carries the caller's session identity for an upstream request. The
// zero value issues an unauthenticated request.
type Auth struct {
	SID   string
	Token string
}

// Public is the credential for unauthenticated requests.
var Public = Auth{}

// Client is the upstream API client. OnUnauthorized, when set, is invoked
// with the session ID whenever the upstream reports an expired or invalid
// token, so the session layer can clear the stale session.
type Client struct {
	BaseURL        string
	Timeout        time.Duration
	OnUnauthorized func(ctx context.Context, sid string)

	Auth       *AuthClient
	Articles   *ArticlesClient
	Formations *FormationsClient
	Comments   *CommentsClient
	Users      *UsersClient
	Settings   *SettingsClient
	Portfolio  *PortfolioClient
	Contacts   *ContactsClient
}

// New creates a gateway client for the API at baseURL.
func New(baseURL string) *Client {
	c := &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
	c.Auth = &AuthClient{c: c}
	c.Articles = &ArticlesClient{c: c}
	c.Formations = &FormationsClient{c: c}
	c.Comments = &CommentsClient{c: c}
	c.Users = &UsersClient{c: c}
	c.Settings = &SettingsClient{c: c}
	c.Portfolio = &PortfolioClient{c: c}
	c.Contacts = &ContactsClient{c: c}
	return c
}

// envelope is the upstream response wrapper: {data: ...} on success,
// {message: ...} on failure.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do issues one request and decodes the data envelope into out (out may be
// nil for calls whose response body is ignored).
func (c *Client) do(ctx context.Context, method, path string, auth Auth, payload, out any) error {
	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.BaseURL + path)

	if err := agent.Parse(); err != nil {
		return models.NewUnreachableError(err)
	}

	if auth.Token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+auth.Token)
	}
	if payload != nil {
		agent.JSON(payload)
	}
	agent.Timeout(c.Timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return models.NewUnreachableError(errs[0])
	}

	if code == fiber.StatusUnauthorized {
		if c.OnUnauthorized != nil && auth.SID != "" {
			c.OnUnauthorized(ctx, auth.SID)
		}
		return models.NewUnauthorizedError(serverMessage(body))
	}
	if code >= fiber.StatusBadRequest {
		return models.NewServerRejectedError(serverMessage(body))
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return models.NewServerRejectedError("Malformed server response")
	}
	raw := env.Data
	if len(raw) == 0 {
		// Some endpoints answer without the envelope.
		raw = body
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return models.NewServerRejectedError("Malformed server response")
	}
	return nil
}

func serverMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}
