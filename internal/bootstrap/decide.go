// Package bootstrap decides where a freshly signed-in user goes next and
// creates the stub profile on first sign-in.
package bootstrap

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"learnpath-web/internal/apperr"
	"learnpath-web/internal/models"
	"learnpath-web/internal/repository"
	"learnpath-web/internal/routepath"
	"learnpath-web/internal/session"
)

// Decision is the routing outcome. Err holds a logged, non-blocking failure.
type Decision struct {
	Route   string
	Created bool
	Err     error
}

type Decider struct {
	profiles repository.ProfileRepo
	log      *logrus.Logger
	now      func() time.Time
}

func NewDecider(profiles repository.ProfileRepo, log *logrus.Logger) *Decider {
	return &Decider{profiles: profiles, log: log, now: time.Now}
}

// Decide looks up the session's profile, inserting a stub when absent.
// Storage failures route forward to onboarding, which retries creation.
// Safe to repeat: the lookup precedes any insert.
func (d *Decider) Decide(ctx context.Context, s *session.Session) Decision {
	const op = "bootstrap.Decide"

	if s == nil || s.UserID == "" {
		return Decision{Route: routepath.Login}
	}
	entry := d.log.WithField("user_id", s.UserID)

	p, err := d.profiles.Find(ctx, s)
	if err != nil {
		err = apperr.E(apperr.KindProfileFetch, op, "profile lookup failed", err)
		entry.WithError(err).Error("profile fetch error")
		return Decision{Route: routepath.Onboarding, Err: err}
	}

	if p == nil {
		stub := &models.Profile{
			UserID:              s.UserID,
			CompletedOnboarding: false,
			UpdatedAt:           d.now().UTC(),
		}
		if err := d.profiles.Insert(ctx, s, stub); err != nil {
			err = apperr.E(apperr.KindProfileCreate, op, "stub profile insert failed", err)
			entry.WithError(err).Error("profile create error")
			return Decision{Route: routepath.Onboarding, Err: err}
		}
		entry.Info("created stub profile")
		return Decision{Route: routepath.Onboarding, Created: true}
	}

	if p.CompletedOnboarding {
		return Decision{Route: routepath.Home}
	}
	return Decision{Route: routepath.Onboarding}
}
