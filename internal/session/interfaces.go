package session

import (
	"context"

	"github.com/MKhiriev/go-session-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_manager_mock.go -package=mock

// Manager creates, resolves, refreshes, and destroys session records in the
// remote session record store. It is the only component allowed to touch
// session records.
type Manager interface {
	// CreateSession writes a new session record for userID and returns the
	// signed bearer token that round-trips to it. remember controls the
	// record TTL: 30 days when set, the one-day store default otherwise.
	CreateSession(ctx context.Context, userID string, remember bool) (string, error)

	// ResolveToken maps a request-presented bearer token to an identity.
	// An absent or undecodable token yields the zero (anonymous) identity
	// with a nil error. A token that decodes to a session reference whose
	// backing record is gone yields [ErrSessionMissing]: the caller was
	// logged in once and must be logged out fully, not treated as
	// anonymous. Resolving never extends the record TTL.
	ResolveToken(ctx context.Context, token string) (models.Identity, error)

	// Touch re-writes the session record behind sessionID, re-priming its
	// TTL from the remember flag.
	Touch(ctx context.Context, sessionID string, remember bool) error

	// DestroyToken deletes the session record referenced by the token.
	// Destroying an absent or undecodable token is a no-op.
	DestroyToken(ctx context.Context, token string) error

	// RevokeOtherSessions deletes every session record belonging to userID
	// except excludeSessionID and reports how many records were deleted.
	RevokeOtherSessions(ctx context.Context, userID, excludeSessionID string) (int, error)
}
