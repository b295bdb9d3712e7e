// Package handlers serves the page routes.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"learnpath-web/internal/flash"
	"learnpath-web/internal/routepath"
	"learnpath-web/internal/session"
	"learnpath-web/internal/views"
)

// pages renders templates with the pending flash and the signed-in email.
type pages struct {
	views   *views.Renderer
	notices *flash.Codec
	log     *logrus.Logger
}

func (p pages) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any, notice *flash.Notice) {
	if notice == nil {
		if n, ok := p.notices.ReadAndClear(w, r); ok {
			notice = &n
		}
	}
	pg := views.Page{Title: title, Notice: notice, Data: data}
	if s := session.FromContext(r.Context()); s != nil {
		pg.UserEmail = s.Email
	}
	if err := p.views.Render(w, status, page, pg); err != nil {
		p.log.WithError(err).WithField("page", page).Error("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (p pages) notFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, "error", "Not found", "We couldn't find that page.", nil)
}

// requestBase is the scheme and host the browser used to reach us.
func requestBase(r *http.Request) string {
	scheme := "http"
	if session.IsHTTPS(r) {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// sameHostReferer returns the referring path when it points at this host.
func sameHostReferer(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Host != r.Host || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	// Browsers read "//host" and "/\host" as another origin.
	if strings.HasPrefix(u.Path, "//") || strings.HasPrefix(u.Path, "/\\") {
		return ""
	}
	if u.Path == routepath.SignIn || u.Path == routepath.AuthCallback {
		return ""
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

// Health is the JSON liveness check.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": service})
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
