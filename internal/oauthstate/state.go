// Package oauthstate carries the PKCE verifier across the provider
// round-trip in a short-lived signed cookie.
package oauthstate

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"learnpath-web/internal/session"
)

const (
	CookieName = "lp_oauth_state"
	issuer     = "learnpath-web"
)

var ErrNoState = errors.New("oauth state cookie missing")

// State is what survives the redirect to the provider and back.
type State struct {
	Verifier string
}

type claims struct {
	Verifier string `json:"cv"`
	jwt.RegisteredClaims
}

// Codec signs and verifies state cookies with HS256.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *Codec) Encode(st State) (string, error) {
	now := c.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Verifier: st.Verifier,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign oauth state: %w", err)
	}
	return signed, nil
}

func (c *Codec) Decode(raw string) (State, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return State{}, fmt.Errorf("verify oauth state: %w", err)
	}
	if cl.Verifier == "" {
		return State{}, errors.New("verify oauth state: empty verifier")
	}
	return State{Verifier: cl.Verifier}, nil
}

// Write stores st in the state cookie.
func (c *Codec) Write(w http.ResponseWriter, r *http.Request, st State) error {
	v, err := c.Encode(st)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    v,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   session.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read verifies and returns the state cookie.
func (c *Codec) Read(r *http.Request) (State, error) {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return State{}, ErrNoState
	}
	return c.Decode(ck.Value)
}

func (c *Codec) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   session.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}
