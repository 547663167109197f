package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-session-keeper/models"
)

// flashLifetime bounds how long an uncollected flash notice survives in the
// client's cookie jar.
const flashLifetime = time.Hour

// FlashCodec signs and verifies the self-contained flash cookie. Unlike
// session records, flash notices live entirely inside the signed cookie
// value, so delivering them never depends on the remote store being
// reachable.
type FlashCodec struct {
	signKey string
}

// NewFlashCodec constructs a codec using the given HMAC signing key.
func NewFlashCodec(signKey string) *FlashCodec {
	return &FlashCodec{signKey: signKey}
}

// flashClaims is the JWT payload of the flash cookie: at most one pending
// notice per named channel.
type flashClaims struct {
	jwt.RegisteredClaims
	Notices map[string]models.FlashNotice `json:"notices"`
}

// Flash is the per-request view of the flash cookie. Decode it once from
// the inbound request, read or queue notices, then Commit the remainder to
// the response. Reading a channel consumes it immediately, in memory: two
// sequential reads within one request return the notice once and nil
// thereafter, before any cookie round-trip.
type Flash struct {
	codec   *FlashCodec
	notices map[string]models.FlashNotice
}

// Decode parses a raw flash cookie value into a [Flash] envelope. An empty,
// malformed, or tampered value yields an empty envelope; flash delivery is
// best-effort and a broken cookie only loses a notice.
func (c *FlashCodec) Decode(raw string) *Flash {
	flash := &Flash{
		codec:   c,
		notices: make(map[string]models.FlashNotice),
	}

	if raw == "" {
		return flash
	}

	var claims flashClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return []byte(c.signKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return flash
	}

	for channel, notice := range claims.Notices {
		flash.notices[channel] = notice
	}

	return flash
}

// Set queues a notice on the named channel, replacing any pending one.
func (f *Flash) Set(channel string, notice models.FlashNotice) {
	f.notices[channel] = notice
}

// Get consumes and returns the pending notice for the named channel, or nil
// when nothing is pending. The notice is discarded regardless of whether
// the caller displays it.
func (f *Flash) Get(channel string) *models.FlashNotice {
	notice, ok := f.notices[channel]
	if !ok {
		return nil
	}

	delete(f.notices, channel)
	return &notice
}

// Pending reports whether any channel still holds a notice.
func (f *Flash) Pending() bool {
	return len(f.notices) > 0
}

// Commit serialises the remaining notices into a signed cookie value. An
// empty envelope commits to "" so the boundary can clear the cookie.
func (f *Flash) Commit() (string, error) {
	if len(f.notices) == 0 {
		return "", nil
	}

	now := time.Now()
	claims := &flashClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashLifetime)),
		},
		Notices: f.notices,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte(f.codec.signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing flash cookie: %w", err)
	}

	return raw, nil
}
