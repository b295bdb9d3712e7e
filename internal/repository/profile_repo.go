package repository

import (
	"context"

	"learnpath-web/internal/models"
	"learnpath-web/internal/session"
)

// ProfileTable is the remote table and Mongo collection name.
const ProfileTable = "user_profile"

// ProfileRepo stores one Profile per auth user. The session supplies both
// the key (UserID) and the caller's credentials.
//
// Find returns nil, nil when no row exists.
type ProfileRepo interface {
	Find(ctx context.Context, s *session.Session) (*models.Profile, error)
	Insert(ctx context.Context, s *session.Session, p *models.Profile) error
	Upsert(ctx context.Context, s *session.Session, p *models.Profile) error
}
