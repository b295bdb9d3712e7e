package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"learnpath-web/internal/apperr"
	"learnpath-web/internal/flash"
	"learnpath-web/internal/models"
	"learnpath-web/internal/notify"
	"learnpath-web/internal/onboarding"
	"learnpath-web/internal/repository"
	"learnpath-web/internal/routepath"
	"learnpath-web/internal/session"
	"learnpath-web/internal/views"
)

const (
	msgSaved      = "Saved! You're all set."
	msgSaveFailed = "Couldn't save your preferences. Please try again."
)

const notifyTimeout = 10 * time.Second

type OnboardingHandler struct {
	pages
	signIn   *AuthHandler
	profiles repository.ProfileRepo
	notifier notify.Notifier
	now      func() time.Time
}

func NewOnboardingHandler(signIn *AuthHandler, profiles repository.ProfileRepo, notifier notify.Notifier, v *views.Renderer, notices *flash.Codec, log *logrus.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		pages:    pages{views: v, notices: notices, log: log},
		signIn:   signIn,
		profiles: profiles,
		notifier: notifier,
		now:      time.Now,
	}
}

type onboardingData struct {
	Editing         bool
	Form            onboarding.Form
	Errors          map[string]string
	Other           []string
	Tracks          []onboarding.Option
	BTechYears      []onboarding.Option
	Streams         []onboarding.Option
	SchoolInterests []onboarding.Option
	BTechInterests  []onboarding.Option
}

func newOnboardingData(f onboarding.Form, errs map[string]string, edit bool) onboardingData {
	if errs == nil {
		errs = map[string]string{}
	}
	return onboardingData{
		Editing:         edit,
		Form:            f,
		Errors:          errs,
		Other:           f.OtherInterests(),
		Tracks:          onboarding.Tracks,
		BTechYears:      onboarding.BTechYears,
		Streams:         onboarding.Streams,
		SchoolInterests: onboarding.SchoolInterests,
		BTechInterests:  onboarding.BTechInterests,
	}
}

// editing reports whether the learner reopened the form from home to change
// saved preferences.
func editing(r *http.Request) bool {
	if r.Method == http.MethodPost {
		return r.PostFormValue("edit") == "1"
	}
	return r.URL.Query().Get("edit") == "1"
}

// --- GET /onboarding ---

// Show renders the form. A completed profile goes straight home unless the
// learner asked to edit it, in which case the form starts from the saved row.
func (h *OnboardingHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		h.signIn.StartOAuth(w, r, routepath.Login)
		return
	}

	p, err := h.profiles.Find(r.Context(), sess)
	if err != nil {
		err = apperr.E(apperr.KindProfileFetch, "onboarding.Show", "profile lookup failed", err)
		h.log.WithError(err).WithField("user_id", sess.UserID).Error("Error fetching profile")
		p = nil
	}
	edit := editing(r)
	if p != nil && p.CompletedOnboarding && !edit {
		http.Redirect(w, r, routepath.Home, http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, "onboarding", "Onboarding", newOnboardingData(onboarding.FromProfile(p), nil, edit), nil)
}

// --- POST /onboarding ---

func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		h.signIn.StartOAuth(w, r, routepath.Login)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := onboarding.FromValues(r.PostForm)
	if err := form.Validate(); err != nil {
		h.render(w, r, http.StatusUnprocessableEntity, "onboarding", "Onboarding", newOnboardingData(form, apperr.FieldErrors(err), editing(r)), nil)
		return
	}

	payload := form.Payload(sess.UserID, h.now())
	if err := h.profiles.Upsert(r.Context(), sess, &payload); err != nil {
		err = apperr.E(apperr.KindSave, "onboarding.Submit", "profile upsert failed", err)
		h.log.WithError(err).WithField("user_id", sess.UserID).Error("Error saving onboarding")
		notice := flash.Error(msgSaveFailed)
		h.render(w, r, http.StatusBadGateway, "onboarding", "Onboarding", newOnboardingData(form, nil, editing(r)), &notice)
		return
	}

	h.welcome(sess, payload)
	h.notices.Write(w, r, flash.Success(msgSaved))
	http.Redirect(w, r, routepath.Home, http.StatusSeeOther)
}

// welcome sends the welcome email off the request path.
func (h *OnboardingHandler) welcome(sess *session.Session, p models.Profile) {
	if h.notifier == nil || sess.Email == "" {
		return
	}
	msg := notify.WelcomeMessage(sess.Email, p)
	entry := h.log.WithField("user_id", sess.UserID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := h.notifier.Notify(ctx, msg); err != nil && !errors.Is(err, context.Canceled) {
			entry.WithError(err).Warn("welcome notification failed")
		}
	}()
}
