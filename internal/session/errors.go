// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

// Sentinel errors returned by the session manager. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrSessionMissing is returned by ResolveToken when a bearer token
	// decodes to a well-formed session reference but the backing record is
	// gone from the store (TTL expiry, bulk revocation, or corruption).
	// The boundary layer must treat this as a forced logout, never as an
	// anonymous caller.
	ErrSessionMissing = errors.New("session record missing")

	// ErrTokenInvalid is returned by the token codec when a cookie value
	// cannot be verified or decoded. It maps to an anonymous caller.
	ErrTokenInvalid = errors.New("invalid bearer token")
)
