package repository

import (
	"context"
	"errors"

	"learnpath-web/internal/models"
	"learnpath-web/internal/session"
	"learnpath-web/internal/supabase"
)

// SupabaseProfileRepo talks to user_profile through PostgREST using the
// signed-in user's access token, so row-level security applies.
type SupabaseProfileRepo struct {
	client *supabase.Client
}

func NewSupabaseProfileRepo(client *supabase.Client) *SupabaseProfileRepo {
	return &SupabaseProfileRepo{client: client}
}

var errNoSession = errors.New("profile repo: session is required")

func (r *SupabaseProfileRepo) Find(ctx context.Context, s *session.Session) (*models.Profile, error) {
	if s == nil {
		return nil, errNoSession
	}
	var p models.Profile
	found, err := r.client.SelectOne(ctx, ProfileTable, "user_id", s.UserID, s.AccessToken, &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

func (r *SupabaseProfileRepo) Insert(ctx context.Context, s *session.Session, p *models.Profile) error {
	if s == nil {
		return errNoSession
	}
	p.UserID = s.UserID
	return r.client.Insert(ctx, ProfileTable, p, s.AccessToken)
}

func (r *SupabaseProfileRepo) Upsert(ctx context.Context, s *session.Session, p *models.Profile) error {
	if s == nil {
		return errNoSession
	}
	p.UserID = s.UserID
	return r.client.Upsert(ctx, ProfileTable, "user_id", p, s.AccessToken)
}
