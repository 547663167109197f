package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/models"
)

const (
	// defaultSessionTTL is the record lifetime when the caller supplies no
	// explicit expiry (a login without "remember me").
	defaultSessionTTL = 24 * time.Hour

	// rememberSessionTTL is the record lifetime for "remember me" logins.
	rememberSessionTTL = 30 * 24 * time.Hour

	// sessionKeyPrefix namespaces all session record keys. The full key
	// shape is "user:<userID>:<random>".
	sessionKeyPrefix = "user:"
)

// manager is the Redis-backed implementation of [Manager].
//
// It owns the session record keyspace exclusively and never caches records
// beyond a single call.
type manager struct {
	client *redis.Client
	codec  *TokenCodec
	logger *logger.Logger
}

// NewManager constructs a [Manager] on top of the given store client and
// bearer token codec.
func NewManager(client *redis.Client, codec *TokenCodec, logger *logger.Logger) Manager {
	logger.Debug().Msg("creating session manager")
	return &manager{
		client: client,
		codec:  codec,
		logger: logger,
	}
}

// CreateSession writes a new session record and returns its signed bearer
// token.
func (m *manager) CreateSession(ctx context.Context, userID string, remember bool) (string, error) {
	log := logger.FromContext(ctx)

	sessionID, err := newSessionID(userID)
	if err != nil {
		return "", err
	}

	record := models.SessionRecord{
		UserID: userID,
		ID:     sessionID,
	}

	expires := rememberExpiry(remember)
	if err := m.save(ctx, record, expires); err != nil {
		log.Err(err).Str("session", sessionID).Msg("error writing session record")
		return "", err
	}

	return m.codec.Issue(sessionID, expires)
}

// ResolveToken maps a bearer token to an identity. See [Manager.ResolveToken]
// for the three-valued outcome contract.
func (m *manager) ResolveToken(ctx context.Context, token string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Identity{}, nil
	}

	sessionID, err := m.codec.Parse(token)
	if err != nil {
		// Undecodable tokens carry no session reference: anonymous.
		return models.Identity{}, nil
	}

	payload, err := m.client.Get(ctx, sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// The token decoded to a real session reference but the record
			// is gone: store-side eviction or revocation, never "never
			// logged in".
			log.Warn().Str("session", sessionID).Msg("session record gone from store")
			return models.Identity{}, ErrSessionMissing
		}
		return models.Identity{}, fmt.Errorf("error reading session record: %w", err)
	}

	var record models.SessionRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		log.Err(err).Str("session", sessionID).Msg("session record payload is corrupt")
		return models.Identity{}, ErrSessionMissing
	}

	// The key embeds the user id it authenticates; a payload that disagrees
	// with its own key is as untrustworthy as a missing record.
	if record.UserID == "" || record.UserID != userIDOfKey(sessionID) {
		log.Warn().Str("session", sessionID).Str("payloadUser", record.UserID).Msg("session record does not match its key")
		return models.Identity{}, ErrSessionMissing
	}

	return models.Identity{UserID: record.UserID, SessionID: sessionID}, nil
}

// Touch re-writes the record behind sessionID, re-priming its TTL.
func (m *manager) Touch(ctx context.Context, sessionID string, remember bool) error {
	record := models.SessionRecord{
		UserID: userIDOfKey(sessionID),
		ID:     sessionID,
	}
	if record.UserID == "" {
		return ErrTokenInvalid
	}

	return m.save(ctx, record, rememberExpiry(remember))
}

// DestroyToken deletes the record referenced by the token. Idempotent.
func (m *manager) DestroyToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sessionID, err := m.codec.Parse(token)
	if err != nil {
		return nil
	}

	if err := m.client.Del(ctx, sessionID).Err(); err != nil {
		return fmt.Errorf("error deleting session record: %w", err)
	}

	return nil
}

// save serialises record and writes it under its own key with the TTL
// derived from expires. A clamped-to-zero TTL means "expire immediately":
// the record is deleted instead of written, because the store rejects
// zero-second expirations.
func (m *manager) save(ctx context.Context, record models.SessionRecord, expires *time.Time) error {
	seconds := expiresToSeconds(expires)
	if seconds <= 0 {
		if err := m.client.Del(ctx, record.ID).Err(); err != nil {
			return fmt.Errorf("error expiring session record: %w", err)
		}
		return nil
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error serialising session record: %w", err)
	}

	if err := m.client.Set(ctx, record.ID, payload, time.Duration(seconds)*time.Second).Err(); err != nil {
		return fmt.Errorf("error writing session record: %w", err)
	}

	return nil
}

// expiresToSeconds converts an optional absolute expiry instant into a
// store TTL in whole seconds. A nil expiry falls back to the one-day
// default; an expiry in the past clamps to zero.
func expiresToSeconds(expires *time.Time) int64 {
	if expires == nil {
		return int64(defaultSessionTTL / time.Second)
	}

	delta := time.Until(*expires).Seconds()
	if delta < 0 {
		return 0
	}

	return int64(math.Round(delta))
}

// rememberExpiry maps the "remember me" flag to an optional absolute expiry:
// 30 days out when set, nil (store default) otherwise.
func rememberExpiry(remember bool) *time.Time {
	if !remember {
		return nil
	}

	expires := time.Now().Add(rememberSessionTTL)
	return &expires
}

// newSessionID generates a fresh record key "user:<userID>:<random>" with
// four random bytes of hex as the unique suffix.
func newSessionID(userID string) (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("error generating session id: %w", err)
	}

	return sessionKeyPrefix + userID + ":" + hex.EncodeToString(randomBytes), nil
}

// userIDOfKey extracts the user id embedded in a session record key, or ""
// when the key does not match the "user:<userID>:<random>" shape.
func userIDOfKey(sessionID string) string {
	parts := strings.Split(sessionID, ":")
	if len(parts) != 3 || parts[0]+":" != sessionKeyPrefix || parts[1] == "" || parts[2] == "" {
		return ""
	}

	return parts[1]
}
