package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer is the "iss" claim embedded in every issued bearer token.
const tokenIssuer = "go-session-keeper"

// TokenCodec signs and verifies the bearer token carried by the session
// cookie. The token is an HMAC-SHA256 JWT whose subject is the session
// record key. A token that parses proves nothing on its own; trust comes
// from the record lookup in the session record store.
type TokenCodec struct {
	signKey string
}

// NewTokenCodec constructs a codec using the given HMAC signing key.
func NewTokenCodec(signKey string) *TokenCodec {
	return &TokenCodec{signKey: signKey}
}

// Issue signs a bearer token referencing the given session record key.
// When expires is non-nil the token itself expires at that instant; the
// record's store-side TTL remains the authoritative lifetime either way.
func (c *TokenCodec) Issue(sessionID string, expires *time.Time) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:   tokenIssuer,
		Subject:  sessionID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if expires != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expires)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(c.signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing bearer token: %w", err)
	}

	return tokenString, nil
}

// Parse verifies the signature and issuer of a raw bearer token and returns
// the session record key it references. Any validation failure (bad
// signature, wrong issuer, expired, malformed, empty subject) is normalised
// to [ErrTokenInvalid] so that callers do not need to inspect low-level JWT
// errors.
func (c *TokenCodec) Parse(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(c.signKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrTokenInvalid
	}

	sessionID, err := token.Claims.GetSubject()
	if err != nil || sessionID == "" {
		return "", ErrTokenInvalid
	}

	return sessionID, nil
}
