package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartefn/moneybook/internal/auth"
)

func TestManager_RoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	token, err := m.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := auth.NewManager("test-secret", -time.Minute)

	token, err := m.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-a", time.Hour)
	verifier := auth.NewManager("secret-b", time.Hour)

	token, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
