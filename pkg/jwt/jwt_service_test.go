package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yummy-backend/domain"
)

func TestOwnerFromToken(t *testing.T) {
	s := NewJWTService("secret", "yummy")
	owner := uuid.New()

	token, err := s.GenerateToken(owner, "editor", time.Hour)
	require.NoError(t, err)

	got, role, err := s.OwnerFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, owner, got)
	assert.Equal(t, "editor", role)
}

func TestOwnerFromToken_Rejects(t *testing.T) {
	s := NewJWTService("secret", "yummy")
	owner := uuid.New()

	expired, err := s.GenerateToken(owner, "", -time.Minute)
	require.NoError(t, err)
	_, _, err = s.OwnerFromToken(expired)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	foreign, err := NewJWTService("other", "yummy").GenerateToken(owner, "", time.Hour)
	require.NoError(t, err)
	_, _, err = s.OwnerFromToken(foreign)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	otherIssuer, err := NewJWTService("secret", "shop").GenerateToken(owner, "", time.Hour)
	require.NoError(t, err)
	_, _, err = s.OwnerFromToken(otherIssuer)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, err = s.OwnerFromToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
