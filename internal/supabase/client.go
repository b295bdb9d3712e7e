// Package supabase adapts the hosted auth (GoTrue) and table (PostgREST)
// clients to the shapes the rest of the app uses. Tokens pass through
// untouched.
package supabase

import (
	"context"
	"net/http"
	"strings"
	"time"

	gotrue "github.com/supabase-community/auth-go"
	"github.com/supabase-community/postgrest-go"
)

const (
	authPath = "/auth/v1"
	restPath = "/rest/v1"
)

type Client struct {
	baseURL string
	apiKey  string
	auth    gotrue.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	auth := gotrue.New("", apiKey).
		WithCustomAuthURL(baseURL + authPath).
		WithClient(http.Client{Timeout: timeout})
	return &Client{baseURL: baseURL, apiKey: apiKey, auth: auth}
}

// rest returns a PostgREST client acting as bearer. A fresh client per call
// keeps per-user headers off shared state.
func (c *Client) rest(bearer string) *postgrest.Client {
	if bearer == "" {
		bearer = c.apiKey
	}
	return postgrest.NewClient(c.baseURL+restPath, "public", map[string]string{
		"apikey":        c.apiKey,
		"Authorization": "Bearer " + bearer,
	})
}

// The upstream clients take no context, so cancellation is honoured
// before each call only.
func live(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
