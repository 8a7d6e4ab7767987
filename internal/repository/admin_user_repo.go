package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"adminnotice/panel/internal/config"
	"adminnotice/panel/internal/model"
)

var ErrAdminUserNotFound = errors.New("admin user not found")

type AdminUserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)
}

// staticAdminUserRepository serves the admin accounts declared in config.
type staticAdminUserRepository struct {
	byID       map[uuid.UUID]*model.AdminUser
	byUsername map[string]*model.AdminUser
}

// NewStaticAdminUserRepository validates the configured users. Usernames are
// matched case-insensitively.
func NewStaticAdminUserRepository(users []config.AdminUserConfig) (AdminUserRepository, error) {
	r := &staticAdminUserRepository{
		byID:       make(map[uuid.UUID]*model.AdminUser, len(users)),
		byUsername: make(map[string]*model.AdminUser, len(users)),
	}
	for i, u := range users {
		id, err := uuid.Parse(u.ID)
		if err != nil {
			return nil, fmt.Errorf("admin user %d: invalid id: %w", i, err)
		}
		name := strings.ToLower(strings.TrimSpace(u.Username))
		if name == "" {
			return nil, fmt.Errorf("admin user %d: username required", i)
		}
		if _, dup := r.byUsername[name]; dup {
			return nil, fmt.Errorf("admin user %d: duplicate username %q", i, u.Username)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("admin user %d: duplicate id %s", i, id)
		}

		caps := make([]model.Capability, 0, len(u.Capabilities))
		for _, c := range u.Capabilities {
			caps = append(caps, model.Capability(c))
		}
		user := &model.AdminUser{
			ID:           id,
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Capabilities: caps,
		}
		r.byID[id] = user
		r.byUsername[name] = user
	}
	return r, nil
}

func (r *staticAdminUserRepository) GetByID(_ context.Context, id uuid.UUID) (*model.AdminUser, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrAdminUserNotFound
	}
	return u, nil
}

func (r *staticAdminUserRepository) GetByUsername(_ context.Context, username string) (*model.AdminUser, error) {
	u, ok := r.byUsername[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, ErrAdminUserNotFound
	}
	return u, nil
}
