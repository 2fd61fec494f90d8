package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/repositories"
)

// ProfileService reads and upserts profiles.
type ProfileService struct {
	store *repositories.Store
	now   func() int64
}

func NewProfileService(store *repositories.Store) *ProfileService {
	return &ProfileService{store: store, now: nowMillis}
}

// Get returns the user joined to its profile. Profile columns are nil until
// the first update.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.ProfileView, error) {
	view, err := s.store.Profiles.GetView(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found", "get profile")
	}
	return view, nil
}

// Upsert creates the caller's profile or updates it. Empty fields keep the
// stored value, so a field cannot be cleared.
func (s *ProfileService) Upsert(ctx context.Context, callerID, userID string, req models.UpdateProfileRequest) (*models.ProfileView, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}

	now := s.now()
	profile, err := s.store.Profiles.GetByUserID(ctx, userID)
	switch {
	case repositories.IsNotFound(err):
		profile = &models.Profile{UserID: userID, CreatedAt: now, UpdatedAt: now}
		applyProfileFields(profile, req)
		err = s.store.Profiles.Create(ctx, profile)
		if errors.Is(err, repositories.ErrDuplicate) {
			// Created concurrently; fall back to updating it.
			return s.Upsert(ctx, callerID, userID, req)
		}
	case err == nil:
		applyProfileFields(profile, req)
		profile.UpdatedAt = now
		err = s.store.Profiles.Update(ctx, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return s.Get(ctx, userID)
}

func applyProfileFields(p *models.Profile, req models.UpdateProfileRequest) {
	set := func(dst **string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = &v
		}
	}
	set(&p.Headline, req.Headline)
	set(&p.Bio, req.Bio)
	set(&p.Location, req.Location)
	set(&p.Website, req.Website)
}
