package bootstrap

import (
	"context"
	"errors"
	"testing"

	"learnpath-web/internal/apperr"
	"learnpath-web/internal/logger"
	"learnpath-web/internal/models"
	"learnpath-web/internal/repository"
	"learnpath-web/internal/routepath"
	"learnpath-web/internal/session"
)

type failingRepo struct {
	*repository.MemoryProfileRepo
	findErr   error
	insertErr error
	inserts   int
}

func (f *failingRepo) Find(ctx context.Context, s *session.Session) (*models.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.MemoryProfileRepo.Find(ctx, s)
}

func (f *failingRepo) Insert(ctx context.Context, s *session.Session, p *models.Profile) error {
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	return f.MemoryProfileRepo.Insert(ctx, s, p)
}

func TestDecideNoSession(t *testing.T) {
	t.Parallel()

	d := NewDecider(repository.NewMemoryProfileRepo(), logger.Discard())
	if got := d.Decide(context.Background(), nil); got.Route != routepath.Login {
		t.Fatalf("Route = %q, want %q", got.Route, routepath.Login)
	}
	if got := d.Decide(context.Background(), &session.Session{}); got.Route != routepath.Login {
		t.Fatalf("Route = %q, want %q", got.Route, routepath.Login)
	}
}

func TestDecideCreatesStubOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewMemoryProfileRepo()
	d := NewDecider(repo, logger.Discard())
	sess := &session.Session{UserID: "u-1"}

	first := d.Decide(ctx, sess)
	if first.Route != routepath.Onboarding || !first.Created || first.Err != nil {
		t.Fatalf("first = %+v", first)
	}
	second := d.Decide(ctx, sess)
	if second.Route != routepath.Onboarding || second.Created || second.Err != nil {
		t.Fatalf("second = %+v", second)
	}

	if repo.Len() != 1 || repo.Writes() != 1 {
		t.Fatalf("rows = %d writes = %d, want exactly one stub", repo.Len(), repo.Writes())
	}
	stub := repo.Get("u-1")
	if stub.CompletedOnboarding || stub.UpdatedAt.IsZero() {
		t.Fatalf("stub = %+v", stub)
	}
}

func TestDecideRoutesOnCompletion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewMemoryProfileRepo()
	repo.Put(&models.Profile{UserID: "done", CompletedOnboarding: true})
	repo.Put(&models.Profile{UserID: "pending"})
	d := NewDecider(repo, logger.Discard())

	if got := d.Decide(ctx, &session.Session{UserID: "done"}); got.Route != routepath.Home {
		t.Fatalf("complete profile Route = %q, want %q", got.Route, routepath.Home)
	}
	if got := d.Decide(ctx, &session.Session{UserID: "pending"}); got.Route != routepath.Onboarding || got.Created {
		t.Fatalf("incomplete profile = %+v", got)
	}
	if repo.Writes() != 0 {
		t.Fatalf("writes = %d, want 0", repo.Writes())
	}
}

func TestDecideFailsOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sess := &session.Session{UserID: "u-1"}

	fetch := &failingRepo{MemoryProfileRepo: repository.NewMemoryProfileRepo(), findErr: errors.New("503")}
	got := NewDecider(fetch, logger.Discard()).Decide(ctx, sess)
	if got.Route != routepath.Onboarding || !errors.Is(got.Err, apperr.ErrProfileFetch) {
		t.Fatalf("fetch failure = %+v", got)
	}
	if fetch.inserts != 0 {
		t.Fatalf("inserted after a failed lookup")
	}

	create := &failingRepo{MemoryProfileRepo: repository.NewMemoryProfileRepo(), insertErr: errors.New("rls")}
	got = NewDecider(create, logger.Discard()).Decide(ctx, sess)
	if got.Route != routepath.Onboarding || got.Created || !errors.Is(got.Err, apperr.ErrProfileCreate) {
		t.Fatalf("create failure = %+v", got)
	}
}
