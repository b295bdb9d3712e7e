package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"learnpath-web/internal/catalog"
	"learnpath-web/internal/flash"
	"learnpath-web/internal/onboarding"
	"learnpath-web/internal/repository"
	"learnpath-web/internal/session"
	"learnpath-web/internal/views"
)

// PageHandler serves the landing, sign-in, home and learn pages.
type PageHandler struct {
	pages
	profiles repository.ProfileRepo
}

func NewPageHandler(profiles repository.ProfileRepo, v *views.Renderer, notices *flash.Codec, log *logrus.Logger) *PageHandler {
	return &PageHandler{pages: pages{views: v, notices: notices, log: log}, profiles: profiles}
}

func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "landing", "", nil, nil)
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "Sign in", nil, nil)
}

type profileSummary struct {
	Stage     string
	Interests []string
}

// --- GET /home ---

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	data := struct{ Profile *profileSummary }{}
	p, err := h.profiles.Find(r.Context(), sess)
	switch {
	case err != nil:
		h.log.WithError(err).WithField("user_id", sess.UserID).Error("Error fetching profile")
	case p != nil:
		f := onboarding.FromProfile(p)
		data.Profile = &profileSummary{Stage: f.StageLabel(), Interests: f.Interests}
	}

	h.render(w, r, http.StatusOK, "home", "Home", data, nil)
}

// --- GET /learn ---

func (h *PageHandler) Learn(w http.ResponseWriter, r *http.Request) {
	data := struct{ Subjects []catalog.Subject }{catalog.Subjects()}
	h.render(w, r, http.StatusOK, "subjects", "Choose a Subject", data, nil)
}

// --- GET /learn/{subject} ---

func (h *PageHandler) Subject(w http.ResponseWriter, r *http.Request) {
	s, ok := catalog.Find(chi.URLParam(r, "subject"))
	if !ok {
		h.notFound(w, r)
		return
	}
	data := struct{ Subject catalog.Subject }{s}
	h.render(w, r, http.StatusOK, "subject", s.Name, data, nil)
}

// --- GET /learn/{subject}/{topic} ---

func (h *PageHandler) Topic(w http.ResponseWriter, r *http.Request) {
	s, ok := catalog.Find(chi.URLParam(r, "subject"))
	if !ok {
		h.notFound(w, r)
		return
	}
	t, sec, ok := s.Topic(chi.URLParam(r, "topic"))
	if !ok {
		h.notFound(w, r)
		return
	}
	data := struct {
		Subject catalog.Subject
		Section catalog.Section
		Topic   catalog.Topic
	}{s, sec, t}
	h.render(w, r, http.StatusOK, "topic", t.Name, data, nil)
}

// NotFound renders the 404 page for unknown routes.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}
