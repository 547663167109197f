package models

import "time"

// Role is the authorization role assigned to a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the persistent identity record stored in the credential store.
//
// Hash holds the bcrypt password hash and is never serialized to clients.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
