// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. The process must fail
// fast when a required external-store connection or the cookie signing key
// is absent.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Session.RedisURL == "" {
		return ErrMissingRedisURL
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrMissingDatabaseDSN
	}

	if cfg.App.CookieSignKey == "" {
		return ErrMissingCookieSignKey
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrMissingServerAddress
	}

	return nil
}
