package service

import "errors"

var (
	// ErrUserVanished is returned when an authenticated identity no longer
	// maps to a user row. The boundary layer must tear the session down.
	ErrUserVanished = errors.New("authenticated user no longer exists")
)

// User-facing messages attached to the AuthError taxonomy.
const (
	msgAlreadyLoggedIn  = "Already logged in"
	msgMustBeLoggedIn   = "Must be logged in"
	msgUserDoesNotExist = "User does not exist"
	msgIncorrectPass    = "Incorrect password"
	msgEmailTaken       = "Email is already registered"
	msgInvalidEmail     = "Invalid email address"
	msgPasswordTooShort = "Password must be at least 8 characters long"
	msgPasswordMismatch = "Passwords do not match"
)
