package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are absent.
var (
	// ErrMissingRedisURL indicates that the session record store URL was
	// not provided by any configuration source.
	ErrMissingRedisURL = errors.New("missing session record store URL")
	// ErrMissingDatabaseDSN indicates that the credential store DSN was
	// not provided by any configuration source.
	ErrMissingDatabaseDSN = errors.New("missing credential store DSN")
	// ErrMissingCookieSignKey indicates that the cookie signing key was
	// not provided by any configuration source.
	ErrMissingCookieSignKey = errors.New("missing cookie signing key")
	// ErrMissingServerAddress indicates that the HTTP listen address was
	// not provided by any configuration source.
	ErrMissingServerAddress = errors.New("missing server address")
)
