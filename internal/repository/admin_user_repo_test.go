package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adminnotice/panel/internal/config"
	"adminnotice/panel/internal/model"
)

func TestStaticAdminUserRepository(t *testing.T) {
	id := uuid.New()
	repo, err := NewStaticAdminUserRepository([]config.AdminUserConfig{{
		ID:           id.String(),
		Username:     "Admin",
		PasswordHash: "hash",
		Capabilities: []string{"manage_options"},
	}})
	require.NoError(t, err)

	ctx := context.Background()
	u, err := repo.GetByUsername(ctx, " admin ")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.True(t, u.Can(model.CapManageOptions))
	require.False(t, u.Can(model.CapActivatePlugins))
	require.True(t, u.Can(model.CapRead))

	u, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Admin", u.Username)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, ErrAdminUserNotFound)
	_, err = repo.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, ErrAdminUserNotFound)
}

func TestStaticAdminUserRepository_Invalid(t *testing.T) {
	_, err := NewStaticAdminUserRepository([]config.AdminUserConfig{{ID: "nope", Username: "a"}})
	require.Error(t, err)

	_, err = NewStaticAdminUserRepository([]config.AdminUserConfig{{ID: uuid.NewString()}})
	require.Error(t, err)

	_, err = NewStaticAdminUserRepository([]config.AdminUserConfig{
		{ID: uuid.NewString(), Username: "a"},
		{ID: uuid.NewString(), Username: "A"},
	})
	require.Error(t, err)
}
