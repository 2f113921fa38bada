package repository

import (
	"context"
	"fmt"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/apperror"
)

type ProfileRepository struct {
	store store.Store[model.Profile]
}

func NewProfileRepository(s store.Store[model.Profile]) *ProfileRepository {
	return &ProfileRepository{store: s}
}

func (r *ProfileRepository) Get(ctx context.Context, id string) (*model.Profile, error) {
	return r.store.GetOne(ctx, id)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	email = model.NormalizeEmail(email)
	profiles, err := r.store.List(ctx, store.Filters{"email": email})
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, apperror.NotFound(fmt.Sprintf("profile %s not found", email))
	}
	return &profiles[0], nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	profile.Email = model.NormalizeEmail(profile.Email)
	if profile.Role == "" {
		profile.Role = model.RoleUser
	}
	return r.store.Create(ctx, profile)
}

func (r *ProfileRepository) SetRole(ctx context.Context, id string, role model.Role) (*model.Profile, error) {
	return r.store.Update(ctx, id, map[string]interface{}{"role": string(role)})
}
