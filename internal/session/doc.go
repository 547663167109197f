// Package session owns everything that maps a request-presented bearer
// token to an authenticated identity: the Redis-backed session record
// store, the signed bearer token codec, the self-contained flash notice
// cookie, and bulk revocation of a user's other sessions.
//
// Session records live exclusively in the remote store under keys of the
// form "user:<userID>:<random>" with a store-enforced TTL; nothing in this
// package caches them beyond a single call.
package session
