package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", "panel", time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "admin")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, id.String(), claims.Subject)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestManager_RejectsWrongKeyAndIssuer(t *testing.T) {
	token, err := NewManager("secret", "panel", time.Hour).GenerateAccessToken(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = NewManager("other", "panel", time.Hour).Validate(token)
	require.Error(t, err)

	_, err = NewManager("secret", "elsewhere", time.Hour).Validate(token)
	require.ErrorIs(t, err, ErrInvalidIssuer)
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("secret", "panel", time.Minute)
	base := time.Now()
	m.now = func() time.Time { return base }

	token, err := m.GenerateAccessToken(uuid.New(), "admin")
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = m.Validate(token)
	require.Error(t, err)
}
