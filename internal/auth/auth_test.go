package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTripResolvesPrincipal(t *testing.T) {
	tokens := NewTokens("access", "refresh", 60, 7)
	id := uuid.New()

	s, err := tokens.Access(KindProfessional, id, "PROFESSIONAL_ADMIN")
	require.NoError(t, err)

	claims, err := tokens.ParseAccess(s)
	require.NoError(t, err)

	p, err := PrincipalFromClaims(claims)
	require.NoError(t, err)

	pro, ok := p.(ProfessionalPrincipal)
	require.True(t, ok)
	assert.Equal(t, id, pro.ID)
	assert.True(t, pro.IsAdmin())
}

func TestClientPrincipal(t *testing.T) {
	tokens := NewTokens("access", "refresh", 60, 7)
	id := uuid.New()

	s, err := tokens.Access(KindClient, id, "")
	require.NoError(t, err)
	claims, err := tokens.ParseAccess(s)
	require.NoError(t, err)

	p, err := PrincipalFromClaims(claims)
	require.NoError(t, err)
	_, ok := p.(ClientPrincipal)
	assert.True(t, ok)
	assert.Equal(t, KindClient, p.Kind())
}

func TestRefreshTokenUsesSeparateSecret(t *testing.T) {
	tokens := NewTokens("access", "refresh", 60, 7)

	s, exp, err := tokens.Refresh(KindClient, uuid.New())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)

	_, err = tokens.ParseAccess(s)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	claims, err := tokens.ParseRefresh(s)
	require.NoError(t, err)
	assert.Equal(t, KindClient, claims.Type)
	assert.NotEmpty(t, claims.ID)
}

func TestExpiredToken(t *testing.T) {
	tokens := NewTokens("access", "refresh", 60, 7)
	tokens.AccessTTL = -time.Minute

	s, err := tokens.Access(KindProfessional, uuid.New(), "PROFESSIONAL")
	require.NoError(t, err)

	_, err = tokens.ParseAccess(s)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestPasswordHelpers(t *testing.T) {
	h, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, "secret1"))
	assert.False(t, CheckPassword(h, "secret2"))

	assert.Len(t, HashToken("abc"), 64)
	assert.Equal(t, HashToken("abc"), HashToken("abc"))

	p, err := TemporaryPassword(10)
	require.NoError(t, err)
	assert.Len(t, p, 10)
}
