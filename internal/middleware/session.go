// Package middleware holds the HTTP middleware shared by the page routes.
package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"learnpath-web/internal/auth"
	"learnpath-web/internal/routepath"
	"learnpath-web/internal/session"
)

// LoadSession resolves the session cookie into a live session on the
// request context. A stale cookie is cleared; store errors are logged and
// the request continues signed out.
func LoadSession(svc *auth.Service, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := session.ReadCookie(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := svc.Current(r.Context(), id)
			if err != nil {
				log.WithError(err).Error("load session")
				next.ServeHTTP(w, r)
				return
			}
			if sess == nil {
				session.ClearCookie(w, r)
				next.ServeHTTP(w, r)
				return
			}

			SetUserID(r.Context(), sess.UserID)
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}

// RequireSession sends signed-out visitors to the sign-in page.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()) == nil {
			http.Redirect(w, r, routepath.Login, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
