package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec_IssueParseRoundtrip(t *testing.T) {
	codec := NewTokenCodec(testSignKey)

	token, err := codec.Issue("user:user-1:deadbeef", nil)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessionID, err := codec.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user:user-1:deadbeef", sessionID)
}

func TestTokenCodec_ParseRejectsWrongKey(t *testing.T) {
	token, err := NewTokenCodec("other-key").Issue("user:user-1:deadbeef", nil)
	require.NoError(t, err)

	_, err = NewTokenCodec(testSignKey).Parse(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodec_ParseRejectsExpired(t *testing.T) {
	codec := NewTokenCodec(testSignKey)

	past := time.Now().Add(-time.Minute)
	token, err := codec.Issue("user:user-1:deadbeef", &past)
	require.NoError(t, err)

	_, err = codec.Parse(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodec_ParseRejectsWrongIssuer(t *testing.T) {
	claims := &jwt.RegisteredClaims{
		Issuer:  "someone-else",
		Subject: "user:user-1:deadbeef",
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = NewTokenCodec(testSignKey).Parse(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodec_ParseRejectsEmptySubject(t *testing.T) {
	claims := &jwt.RegisteredClaims{
		Issuer: tokenIssuer,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = NewTokenCodec(testSignKey).Parse(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodec_ParseRejectsGarbage(t *testing.T) {
	codec := NewTokenCodec(testSignKey)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := codec.Parse(raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", raw)
	}
}
