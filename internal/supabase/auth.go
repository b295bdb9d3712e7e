package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/auth-go/types"
	"golang.org/x/oauth2"
)

// User is the subset of the GoTrue user object this app reads.
type User struct {
	ID    string
	Email string
	Role  string
}

// TokenResponse is the GoTrue token grant answer.
type TokenResponse struct {
	AccessToken  string
	TokenType    string
	ExpiresIn    int64
	ExpiresAt    int64
	RefreshToken string
	User         User
}

// Token converts the grant into an oauth2.Token.
func (t *TokenResponse) Token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
	}
	switch {
	case t.ExpiresAt > 0:
		tok.Expiry = time.Unix(t.ExpiresAt, 0)
	case t.ExpiresIn > 0:
		tok.Expiry = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return tok
}

func fromUser(u types.User) User {
	return User{ID: u.ID.String(), Email: u.Email, Role: u.Role}
}

func fromSession(s types.Session) *TokenResponse {
	return &TokenResponse{
		AccessToken:  s.AccessToken,
		TokenType:    s.TokenType,
		ExpiresIn:    int64(s.ExpiresIn),
		ExpiresAt:    s.ExpiresAt,
		RefreshToken: s.RefreshToken,
		User:         fromUser(s.User),
	}
}

// AuthorizeURL builds the provider sign-in URL. A non-empty codeChallenge
// selects the PKCE flow (code in query); otherwise tokens come back in the
// URL fragment. The browser follows it, so no request is made here.
func (c *Client) AuthorizeURL(provider, redirectTo, codeChallenge string) (string, error) {
	if c.baseURL == "" {
		return "", errors.New("supabase: base URL is not configured")
	}
	if provider == "" {
		return "", errors.New("supabase: provider is required")
	}
	q := url.Values{"provider": {provider}}
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	if codeChallenge != "" {
		q.Set("code_challenge", codeChallenge)
		q.Set("code_challenge_method", "s256")
	}
	return c.baseURL + authPath + "/authorize?" + q.Encode(), nil
}

// ExchangeCode trades a PKCE auth code for a session.
func (c *Client) ExchangeCode(ctx context.Context, code, verifier string) (*TokenResponse, error) {
	return c.token(ctx, types.TokenRequest{GrantType: "pkce", Code: code, CodeVerifier: verifier})
}

// RefreshSession trades a refresh token for a new session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	return c.token(ctx, types.TokenRequest{GrantType: "refresh_token", RefreshToken: refreshToken})
}

func (c *Client) token(ctx context.Context, req types.TokenRequest) (*TokenResponse, error) {
	if err := live(ctx); err != nil {
		return nil, err
	}
	resp, err := c.auth.Token(req)
	if err != nil {
		return nil, fmt.Errorf("supabase: %s grant: %w", req.GrantType, err)
	}
	if resp.AccessToken == "" {
		return nil, errors.New("supabase: token grant returned no access token")
	}
	return fromSession(resp.Session), nil
}

// GetUser resolves the user that owns accessToken.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, errors.New("supabase: access token is required")
	}
	if err := live(ctx); err != nil {
		return nil, err
	}
	resp, err := c.auth.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, fmt.Errorf("supabase: get user: %w", err)
	}
	if resp.User.ID == uuid.Nil {
		return nil, errors.New("supabase: user response has no id")
	}
	u := fromUser(resp.User)
	return &u, nil
}

// Logout revokes the session behind accessToken.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	if err := live(ctx); err != nil {
		return err
	}
	if err := c.auth.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("supabase: logout: %w", err)
	}
	return nil
}
