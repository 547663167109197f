// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-session-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the cookie signing key
	// and the deployment environment.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the credential store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Session holds connection settings for the remote session record store.
	Session Session `envPrefix:"SESSION_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// CookieSignKey is the secret key used to sign the session and flash
	// cookies with HMAC-SHA256. Must be kept confidential.
	// Env: APP_COOKIE_SIGN_KEY
	CookieSignKey string `env:"COOKIE_SIGN_KEY"`

	// Environment is the deployment environment name ("production",
	// "staging", "development"). Cookies are marked Secure when it equals
	// "production".
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the credential store.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the credential store backend.
type DB struct {
	// DSN is the database connection string. Both PostgreSQL DSNs
	// ("postgres://...") and SQLite file paths are supported; the backend
	// is selected from the DSN scheme.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// AuthToken is an optional authentication token appended to the DSN
	// for hosted database services. Leave empty for local databases.
	// Env: STORAGE_DB_DATABASE_AUTH_TOKEN
	AuthToken string `env:"DATABASE_AUTH_TOKEN"`
}

// Session holds connection settings for the remote session record store.
type Session struct {
	// RedisURL is the URL of the Redis-protocol session record store
	// (e.g. "redis://localhost:6379/0" or "rediss://host:port").
	// Env: SESSION_REDIS_URL
	RedisURL string `env:"REDIS_URL"`

	// RedisToken is the optional authentication token for the session
	// record store. When set it overrides any password in RedisURL.
	// Env: SESSION_REDIS_TOKEN
	RedisToken string `env:"REDIS_TOKEN"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// IsProduction reports whether the application runs in the production
// environment. Session and flash cookies are marked Secure in production.
func (cfg *StructuredConfig) IsProduction() bool {
	return cfg.App.Environment == "production"
}
