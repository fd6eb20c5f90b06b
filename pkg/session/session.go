package session

import (
	"github.com/google/uuid"

	"github.com/misl-switch/mislswitch-go/pkg/perm"
	"github.com/misl-switch/mislswitch-go/pkg/users"
)

// Session is the authenticated identity and permission level bound to a
// console task. The zero state is unauthenticated.
type Session struct {
	id            string
	authenticated bool
	user          users.User
}

// New creates an unauthenticated session with a fresh identifier.
func New() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the session identifier carried in audit events.
func (s *Session) ID() string { return s.id }

// Authenticated reports whether a user is bound.
func (s *Session) Authenticated() bool { return s.authenticated }

// Bind marks the session authenticated as u.
func (s *Session) Bind(u users.User) {
	s.user = u
	s.authenticated = true
}

// Reset returns the session to the unauthenticated state, keeping its
// identifier so audit events from one console lifetime correlate.
func (s *Session) Reset() {
	s.user = users.User{}
	s.authenticated = false
}

// User returns the bound account. Only meaningful while Authenticated.
func (s *Session) User() users.User { return s.user }

// Permission returns the bound account's level. An unauthenticated session
// reports ReadOnly, but the console never dispatches for one.
func (s *Session) Permission() perm.Level {
	if !s.authenticated {
		return perm.ReadOnly
	}
	return s.user.Permission
}
