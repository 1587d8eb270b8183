// Package session implements the session lifecycle: durable token/user state,
// proactive refresh scheduling, and the status machine the frontend reads.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/mocksmith/adminctl/internal/domain/auth"
	"github.com/mocksmith/adminctl/internal/ports"
)

// Store owns the session's mutable state: an in-memory access-token cache in
// front of durable storage, plus the refresh scheduler armed on every token
// update. All mutation funnels through its entry points; each holds the mutex
// for its full read-modify-write so operations never interleave.
type Store struct {
	storage ports.Storage
	sched   *Scheduler
	logger  *slog.Logger

	mu        sync.Mutex
	access    string // in-memory cache; durable storage is the fallback
	refreshFn RefreshFunc
}

// StoreOptions groups dependencies for Store.
type StoreOptions struct {
	Storage   ports.Storage
	Scheduler *Scheduler
	Logger    *slog.Logger
}

// NewStore constructs a Store.
func NewStore(opts StoreOptions) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{
		storage: opts.Storage,
		sched:   opts.Scheduler,
		logger:  opts.Logger,
	}
}

// SetRefreshFunc registers the callback the scheduler invokes on proactive
// refresh. The controller wires this at startup.
func (s *Store) SetRefreshFunc(fn RefreshFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshFn = fn
}

// AccessToken returns the current access token, reading through to durable
// storage on a cold cache. The second return is false when no token exists.
// Storage read failures degrade to "absent" rather than surfacing: a session
// that cannot be read is a session that does not exist.
func (s *Store) AccessToken(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.access != "" {
		return s.access, true
	}

	value, err := s.storage.Read(ctx, ports.KeyAccessToken)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.WarnContext(ctx, "read access token from storage failed", "error", err)
		}
		return "", false
	}
	s.access = value
	return value, true
}

// RefreshToken reads the refresh token from durable storage. It is read
// infrequently, so there is no memory cache in front of it.
func (s *Store) RefreshToken(ctx context.Context) (string, bool) {
	value, err := s.storage.Read(ctx, ports.KeyRefreshToken)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.WarnContext(ctx, "read refresh token from storage failed", "error", err)
		}
		return "", false
	}
	return value, true
}

// StoredUser reads the cached user snapshot from durable storage. A missing
// or undecodable entry reports absent.
func (s *Store) StoredUser(ctx context.Context) (*domainauth.User, bool) {
	value, err := s.storage.Read(ctx, ports.KeyUser)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.WarnContext(ctx, "read stored user failed", "error", err)
		}
		return nil, false
	}

	var user domainauth.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		s.logger.WarnContext(ctx, "stored user entry is not valid JSON", "error", err)
		return nil, false
	}
	return &user, true
}

// SetSession establishes a brand-new session: access token to memory and
// durable storage, refresh token and user to durable storage, then arms the
// refresh scheduler with the new access token. This is the only entry point
// that writes the full credential pair.
func (s *Store) SetSession(ctx context.Context, tokens domainauth.Tokens, user domainauth.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = tokens.AccessToken
	if err := s.storage.Write(ctx, ports.KeyAccessToken, tokens.AccessToken); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if err := s.storage.Write(ctx, ports.KeyRefreshToken, tokens.RefreshToken); err != nil {
		return fmt.Errorf("persist refresh token: %w", err)
	}
	if err := s.storage.Write(ctx, ports.KeyUser, string(userJSON)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	s.armLocked(tokens.AccessToken)
	return nil
}

// UpdateAccessToken replaces the access token after a successful refresh and
// re-arms the scheduler. The refresh token and user entries are untouched.
func (s *Store) UpdateAccessToken(ctx context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = accessToken
	if err := s.storage.Write(ctx, ports.KeyAccessToken, accessToken); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}

	s.armLocked(accessToken)
	return nil
}

// ScheduleRefresh arms the scheduler for an already-persisted token, used at
// boot when a stored session is still fresh.
func (s *Store) ScheduleRefresh(accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armLocked(accessToken)
}

// Clear wipes the memory cache and all durable keys and cancels any pending
// refresh timer. Idempotent: clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = ""
	if s.sched != nil {
		s.sched.Cancel()
	}

	var errs []error
	for _, key := range []string{ports.KeyAccessToken, ports.KeyRefreshToken, ports.KeyUser} {
		if err := s.storage.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) armLocked(accessToken string) {
	if s.sched == nil || s.refreshFn == nil {
		return
	}
	s.sched.Schedule(accessToken, s.refreshFn)
}
