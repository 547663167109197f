package models

// SessionRecord is the payload stored in the session record store under a
// key of the form "user:<userID>:<random>". The record's own key is echoed
// into the payload so a resolved session can report which record resolved it;
// bulk revocation relies on this to spare the caller's own record.
type SessionRecord struct {
	UserID string `json:"userId"`
	ID     string `json:"id"`
}

// Identity is the outcome of resolving a bearer token to a session record.
// The zero value means the caller is anonymous.
type Identity struct {
	UserID    string
	SessionID string
}

// Authenticated reports whether the identity belongs to a logged-in user.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}
