package auth

// Package auth contains domain-level types for the session lifecycle.
// It is pure and free of transport/adapter concerns.

import (
	"errors"
	"strings"
	"time"
)

// Role represents an application authorization role.
// Keep string form for easy persistence and JSON transport.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one the server recognizes.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserStatus is the account state as managed by administrators.
type UserStatus string

const (
	UserStatusEnabled UserStatus = "enabled"
	UserStatusBlocked UserStatus = "blocked"
)

// Valid reports whether the status is one the server recognizes.
func (s UserStatus) Valid() bool {
	return s == UserStatusEnabled || s == UserStatusBlocked
}

// User is the server's public snapshot of an account. The cached copy may go
// stale relative to server state (an admin blocking the account elsewhere)
// until the next login or refresh.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Status    UserStatus `json:"status"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// IsBlocked reports whether administrators have blocked the account. A blocked
// user still authenticates; routing them to a restricted view is the
// frontend's job.
func (u User) IsBlocked() bool { return u.Status == UserStatusBlocked }

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Tokens is an access/refresh credential pair. The two are set and cleared
// together; no durable state holds one without the other outside the window
// of a refresh in flight.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Response is the body returned by the login, register, and refresh endpoints.
type Response struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// Tokens returns the credential pair carried by the response.
func (r Response) Tokens() Tokens {
	return Tokens{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
}

// Status is the controller-owned session state visible to the frontend.
type Status string

const (
	// StatusLoading means the boot sequence has not finished yet.
	StatusLoading Status = "loading"
	// StatusAuthenticated means a session is established.
	StatusAuthenticated Status = "authenticated"
	// StatusUnauthenticated means no session exists.
	StatusUnauthenticated Status = "unauthenticated"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	maxPasswordLen = 100
)

// Credentials is the payload for the login endpoint.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate checks the payload before it goes on the wire. Login is lenient on
// the name (any existing account name) but both fields must be present.
func (c Credentials) Validate() error {
	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		return errors.New("username is required")
	case len(name) > maxUsernameLen:
		return errors.New("username is too long")
	case c.Password == "":
		return errors.New("password is required")
	}
	return nil
}

// Registration is the payload for the register endpoint.
type Registration struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate enforces the server's registration constraints client-side so that
// obviously invalid payloads fail before a network round-trip.
func (r Registration) Validate() error {
	name := strings.TrimSpace(r.Name)
	switch {
	case len(name) < minUsernameLen:
		return errors.New("username must be at least 3 characters")
	case len(name) > maxUsernameLen:
		return errors.New("username is too long")
	case len(r.Password) < minPasswordLen:
		return errors.New("password must be at least 6 characters")
	case len(r.Password) > maxPasswordLen:
		return errors.New("password is too long")
	}
	return nil
}
