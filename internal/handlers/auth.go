package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"learnpath-web/internal/apperr"
	"learnpath-web/internal/auth"
	"learnpath-web/internal/bootstrap"
	"learnpath-web/internal/config"
	"learnpath-web/internal/flash"
	"learnpath-web/internal/oauthstate"
	"learnpath-web/internal/routepath"
	"learnpath-web/internal/session"
	"learnpath-web/internal/views"
)

const (
	msgSignInStart  = "Couldn't start sign-in. Please try again."
	msgSignInFailed = "Sign-in failed. Please try again."
	msgSignedOut    = "You've been signed out."
)

type AuthHandler struct {
	pages
	auth    *auth.Service
	state   *oauthstate.Codec
	decider *bootstrap.Decider
	cfg     config.Config
}

func NewAuthHandler(svc *auth.Service, state *oauthstate.Codec, decider *bootstrap.Decider, v *views.Renderer, notices *flash.Codec, cfg config.Config, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		pages:   pages{views: v, notices: notices, log: log},
		auth:    svc,
		state:   state,
		decider: decider,
		cfg:     cfg,
	}
}

func (h *AuthHandler) callbackURL(r *http.Request) string {
	return h.cfg.CallbackURL(requestBase(r), routepath.AuthCallback)
}

// StartOAuth redirects the browser to the provider. On failure the user
// lands on fallback with an error notice.
func (h *AuthHandler) StartOAuth(w http.ResponseWriter, r *http.Request, fallback string) {
	authURL, verifier, err := h.auth.BeginSignIn(h.callbackURL(r))
	if err == nil && verifier != "" {
		err = h.state.Write(w, r, oauthstate.State{Verifier: verifier})
	}
	if err != nil {
		h.log.WithError(err).Error("Error signing in")
		h.notices.Write(w, r, flash.Error(msgSignInStart))
		http.Redirect(w, r, fallback, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// --- GET|POST /auth/signin ---

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	fallback := sameHostReferer(r)
	if fallback == "" {
		fallback = routepath.Login
	}
	h.StartOAuth(w, r, fallback)
}

// --- GET /auth/callback ---

func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if h.auth.Mode() == config.CallbackFragment {
		h.render(w, r, http.StatusOK, "callback", "Signing in", nil, nil)
		return
	}

	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		h.log.WithFields(logrus.Fields{"error": e, "description": q.Get("error_description")}).Warn("provider returned an error")
		h.state.Clear(w, r)
		h.fail(w, r)
		return
	}

	sess := session.FromContext(r.Context())
	if code := q.Get("code"); code != "" {
		st, err := h.state.Read(r)
		h.state.Clear(w, r)
		if err != nil {
			h.log.WithError(err).Warn("oauth state unreadable")
			h.fail(w, r)
			return
		}
		sess, err = h.auth.CompleteCode(r.Context(), code, st.Verifier)
		if err != nil {
			h.log.WithError(err).Error("code exchange failed")
			h.fail(w, r)
			return
		}
		session.WriteCookie(w, r, sess.ID, int(h.auth.SessionTTL().Seconds()))
	}

	if sess == nil {
		h.StartOAuth(w, r, routepath.Login)
		return
	}
	h.route(w, r, sess)
}

// --- POST /auth/callback ---

// CallbackFragment receives the token fragment relayed by the callback page.
func (h *AuthHandler) CallbackFragment(w http.ResponseWriter, r *http.Request) {
	if h.auth.Mode() != config.CallbackFragment {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.log.WithError(err).Warn("callback form unreadable")
		h.fail(w, r)
		return
	}

	tok, err := auth.ParseFragment(r.PostForm.Get("fragment"), time.Now())
	if err != nil {
		h.log.WithError(err).WithField("kind", apperr.KindOf(err)).Warn("callback rejected")
		h.fail(w, r)
		return
	}

	sess, err := h.auth.SetSession(r.Context(), tok)
	if err != nil {
		h.log.WithError(err).Error("set session failed")
		h.fail(w, r)
		return
	}
	session.WriteCookie(w, r, sess.ID, int(h.auth.SessionTTL().Seconds()))
	h.route(w, r, sess)
}

func (h *AuthHandler) route(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	d := h.decider.Decide(r.Context(), sess)
	http.Redirect(w, r, d.Route, http.StatusSeeOther)
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request) {
	h.notices.Write(w, r, flash.Error(msgSignInFailed))
	http.Redirect(w, r, routepath.Login, http.StatusSeeOther)
}

// --- POST /auth/logout ---

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), session.FromContext(r.Context())); err != nil {
		h.log.WithError(err).Error("sign out")
	}
	session.ClearCookie(w, r)
	h.notices.Write(w, r, flash.Info(msgSignedOut))
	http.Redirect(w, r, routepath.Root, http.StatusSeeOther)
}
