// Package authtest provides an in-memory auth.Provider for tests.
package authtest

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"learnpath-web/internal/supabase"
)

var ErrUnknownToken = errors.New("authtest: unknown token")

// Provider hands out tokens for a fixed user and counts calls.
type Provider struct {
	mu sync.Mutex

	User supabase.User
	// ExpiresIn applies to every issued token; 0 means one hour.
	ExpiresIn time.Duration

	AuthorizeErr error
	ExchangeErr  error
	RefreshErr   error
	UserErr      error

	Codes map[string]string // code -> expected verifier

	AuthorizeCalls int
	ExchangeCalls  int
	RefreshCalls   int
	GetUserCalls   int
	LogoutCalls    int

	LastChallenge string
}

func NewProvider(userID, email string) *Provider {
	return &Provider{
		User:  supabase.User{ID: userID, Email: email},
		Codes: map[string]string{},
	}
}

func (p *Provider) AuthorizeURL(provider, redirectTo, codeChallenge string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.AuthorizeCalls++
	p.LastChallenge = codeChallenge
	if p.AuthorizeErr != nil {
		return "", p.AuthorizeErr
	}
	q := url.Values{"provider": {provider}, "redirect_to": {redirectTo}}
	if codeChallenge != "" {
		q.Set("code_challenge", codeChallenge)
	}
	return "https://auth.test/authorize?" + q.Encode(), nil
}

func (p *Provider) ExchangeCode(_ context.Context, code, verifier string) (*supabase.TokenResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ExchangeCalls++
	if p.ExchangeErr != nil {
		return nil, p.ExchangeErr
	}
	want, ok := p.Codes[code]
	if !ok || (want != "" && want != verifier) {
		return nil, ErrUnknownToken
	}
	delete(p.Codes, code)
	return p.issue("access-"+code, "refresh-"+code), nil
}

func (p *Provider) RefreshSession(_ context.Context, refreshToken string) (*supabase.TokenResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RefreshCalls++
	if p.RefreshErr != nil {
		return nil, p.RefreshErr
	}
	return p.issue("access-refreshed", refreshToken+"-next"), nil
}

func (p *Provider) GetUser(_ context.Context, accessToken string) (*supabase.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.GetUserCalls++
	if p.UserErr != nil {
		return nil, p.UserErr
	}
	if accessToken == "" {
		return nil, ErrUnknownToken
	}
	u := p.User
	return &u, nil
}

func (p *Provider) Logout(context.Context, string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.LogoutCalls++
	return nil
}

// Calls returns a snapshot of the counters: authorize, exchange, refresh, getUser, logout.
func (p *Provider) Calls() (authorize, exchange, refresh, getUser, logout int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.AuthorizeCalls, p.ExchangeCalls, p.RefreshCalls, p.GetUserCalls, p.LogoutCalls
}

func (p *Provider) issue(access, refresh string) *supabase.TokenResponse {
	ttl := p.ExpiresIn
	if ttl == 0 {
		ttl = time.Hour
	}
	return &supabase.TokenResponse{
		AccessToken:  access,
		TokenType:    "bearer",
		ExpiresAt:    time.Now().Add(ttl).Unix(),
		RefreshToken: refresh,
		User:         p.User,
	}
}
