package ports

// Package ports defines interfaces (hexagonal ports) for the session layer.
// Implementations live in internal/adapters and internal/apiclient;
// orchestration in internal/session.

import (
	"context"

	domainauth "github.com/mocksmith/adminctl/internal/domain/auth"
)

// Durable-storage keys for session state. The user entry is JSON-serialized;
// the token entries are plain strings.
const (
	KeyAccessToken  = "auth_access_token"
	KeyRefreshToken = "auth_refresh_token"
	KeyUser         = "auth_user"
)

// Storage is durable key/value storage for session state. Implementations
// must treat missing keys as ErrNotFound, not as failures.
type Storage interface {
	// Read returns the value stored under key, or ErrNotFound.
	Read(ctx context.Context, key string) (string, error)

	// Write stores value under key, replacing any existing value.
	Write(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}

// AuthAPI is the slice of the remote API the session controller needs.
// The full API client implements it; tests substitute doubles.
type AuthAPI interface {
	// Login exchanges credentials for a token pair and user snapshot.
	Login(ctx context.Context, creds domainauth.Credentials) (*domainauth.Response, error)

	// Register creates an account and authenticates it in one call.
	Register(ctx context.Context, reg domainauth.Registration) (*domainauth.Response, error)

	// Refresh rotates the access token using the long-lived refresh token.
	Refresh(ctx context.Context, refreshToken string) (*domainauth.Response, error)
}

// ErrNotFound is returned by Storage.Read when a key has no value.
var ErrNotFound error = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "key not found" }
