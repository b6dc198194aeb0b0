package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifierRoundTrip(t *testing.T) {
	v := NewVerifier([]byte("secret"))
	tok, err := v.Issue(Identity{ID: "u1", Email: "a@example.com", DisplayName: "Ann"}, time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: "u1", Email: "a@example.com", DisplayName: "Ann"}, id)
}

func TestVerifierRejectsWrongSecret(t *testing.T) {
	tok, err := NewVerifier([]byte("one")).Issue(Identity{ID: "u1"}, time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier([]byte("two")).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifierRejectsExpired(t *testing.T) {
	v := NewVerifier([]byte("secret"))
	v.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := v.Issue(Identity{ID: "u1"}, time.Hour)
	require.NoError(t, err)

	v.now = time.Now
	_, err = v.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifierRejectsGarbage(t *testing.T) {
	_, err := NewVerifier([]byte("secret")).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRequiresIdentity(t *testing.T) {
	_, err := NewVerifier([]byte("secret")).Issue(Identity{}, time.Hour)
	assert.Error(t, err)
}
