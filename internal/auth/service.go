// Package auth normalizes the hosted service's sign-in results into
// server-side sessions and answers "get current session".
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"learnpath-web/internal/config"
	"learnpath-web/internal/session"
	"learnpath-web/internal/supabase"
)

// ProviderGoogle is the only provider the entry pages offer.
const ProviderGoogle = "google"

// Provider is the subset of the hosted auth API the service needs.
// *supabase.Client satisfies it.
type Provider interface {
	AuthorizeURL(provider, redirectTo, codeChallenge string) (string, error)
	ExchangeCode(ctx context.Context, code, verifier string) (*supabase.TokenResponse, error)
	RefreshSession(ctx context.Context, refreshToken string) (*supabase.TokenResponse, error)
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
	Logout(ctx context.Context, accessToken string) error
}

type Options struct {
	// Mode is config.CallbackAmbient or config.CallbackFragment.
	Mode       string
	SessionTTL time.Duration
}

type Service struct {
	provider Provider
	store    session.Store
	opts     Options
	log      *logrus.Logger
	now      func() time.Time
}

func NewService(provider Provider, store session.Store, opts Options, log *logrus.Logger) *Service {
	if opts.Mode == "" {
		opts.Mode = config.CallbackAmbient
	}
	return &Service{
		provider: provider,
		store:    store,
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) Mode() string { return s.opts.Mode }

func (s *Service) SessionTTL() time.Duration { return s.opts.SessionTTL }

// BeginSignIn returns the provider authorization URL for redirectTo. In
// ambient mode it also returns the PKCE verifier the caller must keep until
// the callback.
func (s *Service) BeginSignIn(redirectTo string) (authURL, verifier string, err error) {
	challenge := ""
	if s.opts.Mode == config.CallbackAmbient {
		verifier = oauth2.GenerateVerifier()
		challenge = oauth2.S256ChallengeFromVerifier(verifier)
	}
	authURL, err = s.provider.AuthorizeURL(ProviderGoogle, redirectTo, challenge)
	if err != nil {
		return "", "", fmt.Errorf("build authorization url: %w", err)
	}
	return authURL, verifier, nil
}

// CompleteCode exchanges a PKCE auth code and stores the resulting session.
func (s *Service) CompleteCode(ctx context.Context, code, verifier string) (*session.Session, error) {
	tr, err := s.provider.ExchangeCode(ctx, code, verifier)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	if tr.User.ID == "" {
		u, err := s.provider.GetUser(ctx, tr.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("resolve user: %w", err)
		}
		tr.User = *u
	}
	return s.persist(ctx, tr.User, tr.Token())
}

// SetSession validates a token pair with the hosted service and stores it.
func (s *Service) SetSession(ctx context.Context, tok *oauth2.Token) (*session.Session, error) {
	if tok == nil || tok.AccessToken == "" || tok.RefreshToken == "" {
		return nil, errors.New("set session: access and refresh tokens are required")
	}
	u, err := s.provider.GetUser(ctx, tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}
	return s.persist(ctx, *u, tok)
}

func (s *Service) persist(ctx context.Context, u supabase.User, tok *oauth2.Token) (*session.Session, error) {
	sess := session.New(u.ID, u.Email, tok, s.now())
	if err := s.store.Save(ctx, sess, s.opts.SessionTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Current returns the live session for id, refreshing an expired access
// token. Unknown ids and failed refreshes yield nil, nil.
func (s *Service) Current(ctx context.Context, id string) (*session.Session, error) {
	if id == "" {
		return nil, nil
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	if !sess.Expired(s.now()) {
		return sess, nil
	}

	tr, err := s.provider.RefreshSession(ctx, sess.RefreshToken)
	if err != nil {
		s.log.WithError(err).WithField("user_id", sess.UserID).Warn("session refresh failed")
		if derr := s.store.Delete(ctx, sess.ID); derr != nil {
			s.log.WithError(derr).Warn("delete stale session")
		}
		return nil, nil
	}
	sess.Apply(tr.Token())
	if err := s.store.Save(ctx, sess, s.opts.SessionTTL); err != nil {
		return nil, fmt.Errorf("save refreshed session: %w", err)
	}
	return sess, nil
}

// SignOut revokes the session upstream (best-effort) and forgets it locally.
func (s *Service) SignOut(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.provider.Logout(ctx, sess.AccessToken); err != nil {
		s.log.WithError(err).WithField("user_id", sess.UserID).Warn("upstream logout failed")
	}
	return s.store.Delete(ctx, sess.ID)
}
