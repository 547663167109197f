// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context and type-safe keys.
package utils

import (
	"context"

	"github.com/MKhiriev/go-session-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key used to store the resolved caller identity in
// the request context. Used together with GetIdentityFromContext for
// type-safe retrieval.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a child context carrying the resolved identity.
func WithIdentity(ctx context.Context, ident models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, ident)
}

// GetIdentityFromContext retrieves the resolved caller identity from the
// context.
//
// Returns the identity and an ok flag:
//   - ok == true  — an identity was resolved for this request (it may still
//     be anonymous; check Identity.Authenticated)
//   - ok == false — the identity middleware did not run
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	ident, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return ident, ok
}
