package session

import (
	"fmt"
	"time"
)

// User is the cached identity returned by the remote profile endpoint.
// It is a display cache only; its presence proves nothing about token
// validity.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the payload of a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the payload of a registration attempt.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// State describes where the session is in its lifecycle.
type State uint8

const (
	// StateUnauthenticated means no token is held.
	StateUnauthenticated State = iota
	// StateAuthenticating means a login call is in flight.
	StateAuthenticating
	// StateAuthenticated means a token is held. Right after start the
	// token is provisional until a profile fetch confirms it.
	StateAuthenticated
	// StateRecovering means a durable token is being validated after the
	// in-memory state was found empty.
	StateRecovering
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateRecovering:
		return "recovering"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// Snapshot is an immutable view of the session taken at a single point in
// time. Mutations after the snapshot was taken are not reflected in it.
type Snapshot struct {
	Token string
	User  *User
	State State
}

// IsAuthenticated reports whether the snapshot holds a token. It is always
// derived, never stored, so it cannot diverge from the token itself.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != ""
}
