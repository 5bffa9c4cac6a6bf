package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("super-secret", time.Hour)

	tok, err := tokens.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := tokens.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("secret", -1*time.Second)

	tok, err := tokens.Issue("u1")
	require.NoError(t, err)

	_, err = tokens.Verify(tok)
	require.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokens("right-secret", time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokens("wrong-secret", time.Hour).Verify(tok)
	require.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tokens.Verify(tok); err == nil {
			t.Fatalf("expected error for token %q", tok)
		}
	}
}
