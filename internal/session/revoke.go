package session

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

// revokeScanCount is the per-iteration hint passed to SCAN.
const revokeScanCount = 100

// RevokeOtherSessions enumerates every session record key in the user's
// namespace ("user:<userID>:*") and deletes all of them except
// excludeSessionID.
//
// This is a scan-then-delete over a store without cross-key transactions:
// it tolerates partial completion and is safe to retry, since deleting an
// already-deleted key is a no-op. A login racing with the scan may create a
// record that is or is not swept depending on timing; that race is accepted.
func (m *manager) RevokeOtherSessions(ctx context.Context, userID, excludeSessionID string) (int, error) {
	log := logger.FromContext(ctx)

	pattern := sessionKeyPrefix + userID + ":*"
	revoked := 0

	var cursor uint64
	for {
		keys, next, err := m.client.Scan(ctx, cursor, pattern, revokeScanCount).Result()
		if err != nil {
			return revoked, fmt.Errorf("error scanning session records: %w", err)
		}

		for _, key := range keys {
			if key == excludeSessionID {
				continue
			}

			if err := m.client.Del(ctx, key).Err(); err != nil {
				return revoked, fmt.Errorf("error deleting session record %q: %w", key, err)
			}
			revoked++
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	log.Info().Str("user", userID).Int("revoked", revoked).Msg("revoked other sessions")

	return revoked, nil
}
