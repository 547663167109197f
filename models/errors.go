// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

// AuthCode classifies an expected authentication failure.
type AuthCode string

const (
	CodeUnauthorized AuthCode = "UNAUTHORIZED"
	CodeConflict     AuthCode = "CONFLICT"
	CodeNotFound     AuthCode = "NOT_FOUND"
	CodeBadRequest   AuthCode = "BAD_REQUEST"
)

// AuthError is the closed taxonomy of expected authentication failures.
// Field names the form input the failure should be attached to and is empty
// for failures that are not scoped to a single input (UNAUTHORIZED, CONFLICT
// on the whole operation). Unexpected failures (store unreachable, decode
// errors) are never wrapped in an AuthError.
type AuthError struct {
	Code    AuthCode `json:"code"`
	Field   string   `json:"field,omitempty"`
	Message string   `json:"message"`
}

func (e *AuthError) Error() string {
	if e.Field == "" {
		return string(e.Code) + ": " + e.Message
	}
	return string(e.Code) + " (" + e.Field + "): " + e.Message
}

// NewAuthError constructs a field-scoped AuthError. Pass an empty field for
// operation-level failures.
func NewAuthError(code AuthCode, field, message string) *AuthError {
	return &AuthError{Code: code, Field: field, Message: message}
}

// AsAuthError unwraps err into an *AuthError if it is one.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
