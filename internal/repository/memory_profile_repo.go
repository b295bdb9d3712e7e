package repository

import (
	"context"
	"fmt"
	"sync"

	"learnpath-web/internal/models"
	"learnpath-web/internal/session"
)

// MemoryProfileRepo keeps profiles in process, for local runs and tests.
type MemoryProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
	writes   int
}

func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (r *MemoryProfileRepo) Find(_ context.Context, s *session.Session) (*models.Profile, error) {
	if s == nil {
		return nil, errNoSession
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[s.UserID].Clone(), nil
}

// Insert fails on a duplicate user_id, like the unique key upstream.
func (r *MemoryProfileRepo) Insert(_ context.Context, s *session.Session, p *models.Profile) error {
	if s == nil {
		return errNoSession
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[s.UserID]; ok {
		return fmt.Errorf("profile for %s already exists", s.UserID)
	}
	p.UserID = s.UserID
	r.profiles[s.UserID] = p.Clone()
	r.writes++
	return nil
}

func (r *MemoryProfileRepo) Upsert(_ context.Context, s *session.Session, p *models.Profile) error {
	if s == nil {
		return errNoSession
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p.UserID = s.UserID
	r.profiles[s.UserID] = p.Clone()
	r.writes++
	return nil
}

// Put seeds a profile directly.
func (r *MemoryProfileRepo) Put(p *models.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = p.Clone()
}

// Get reads a profile by user id, bypassing the session.
func (r *MemoryProfileRepo) Get(userID string) *models.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[userID].Clone()
}

// Len is the number of stored rows.
func (r *MemoryProfileRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

// Writes counts successful Insert and Upsert calls.
func (r *MemoryProfileRepo) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}
