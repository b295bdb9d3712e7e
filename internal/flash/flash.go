// Package flash carries one-time toast notices across a redirect.
package flash

import (
	"crypto/sha256"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"

	"learnpath-web/internal/session"
)

const CookieName = "lp_flash"

// MaxAge bounds how long a signed notice is accepted.
const MaxAge = 5 * time.Minute

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Success(msg string) Notice { return Notice{Kind: KindSuccess, Message: msg} }
func Info(msg string) Notice    { return Notice{Kind: KindInfo, Message: msg} }
func Error(msg string) Notice   { return Notice{Kind: KindError, Message: msg} }

// Codec signs notices so a client cannot plant arbitrary toast text.
type Codec struct {
	sc *securecookie.SecureCookie
}

// NewCodec keys the HMAC from secret. The key is derived so the raw secret
// shared with the OAuth state cookie is never used directly.
func NewCodec(secret string) *Codec {
	key := sha256.Sum256([]byte(CookieName + ":" + secret))
	sc := securecookie.New(key[:], nil).
		MaxAge(int(MaxAge.Seconds())).
		SetSerializer(securecookie.JSONEncoder{})
	return &Codec{sc: sc}
}

// Write stores n for the next page render.
func (c *Codec) Write(w http.ResponseWriter, r *http.Request, n Notice) {
	n, ok := normalize(n)
	if !ok {
		return
	}
	value, err := c.sc.Encode(CookieName, n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   session.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear pops the pending notice, if any. Unsigned, tampered and
// expired cookies are cleared and ignored.
func (c *Codec) ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   session.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})

	var n Notice
	if err := c.sc.Decode(CookieName, strings.TrimSpace(ck.Value), &n); err != nil {
		return Notice{}, false
	}
	return normalize(n)
}

func normalize(n Notice) (Notice, bool) {
	n.Message = strings.TrimSpace(n.Message)
	if n.Message == "" {
		return Notice{}, false
	}
	switch n.Kind {
	case KindSuccess, KindInfo, KindError:
		return n, true
	default:
		return Notice{}, false
	}
}
