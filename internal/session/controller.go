package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mocksmith/adminctl/internal/clock"
	domainauth "github.com/mocksmith/adminctl/internal/domain/auth"
	apperrors "github.com/mocksmith/adminctl/internal/errors"
	"github.com/mocksmith/adminctl/internal/ports"
	"github.com/mocksmith/adminctl/internal/token"
)

// Controller is the component the frontend talks to. It owns the
// loading/authenticated/unauthenticated status, orchestrates login, register,
// and logout, and wires the store, scheduler, and API together.
//
// Transitions: loading goes to authenticated or unauthenticated at boot;
// authenticated drops to unauthenticated on logout or fatal refresh failure;
// only a successful login or registration leaves unauthenticated.
type Controller struct {
	store  *Store
	api    ports.AuthAPI
	buffer time.Duration
	clk    clock.Clock
	logger *slog.Logger

	mu     sync.Mutex
	status domainauth.Status
	user   *domainauth.User
}

// ControllerOptions groups dependencies for Controller.
type ControllerOptions struct {
	Store     *Store
	API       ports.AuthAPI
	Scheduler *Scheduler

	// ExpiryBuffer is the safety margin applied when judging whether the
	// stored access token is still usable. Zero means token.DefaultExpiryBuffer.
	ExpiryBuffer time.Duration
	Clock        clock.Clock
	Logger       *slog.Logger
}

// NewController constructs a Controller in the loading state and registers
// itself with the store and scheduler: the scheduler's proactive refresh runs
// through RefreshSession, and a failed proactive refresh force-expires the
// session.
func NewController(opts ControllerOptions) *Controller {
	if opts.ExpiryBuffer <= 0 {
		opts.ExpiryBuffer = token.DefaultExpiryBuffer
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Controller{
		store:  opts.Store,
		api:    opts.API,
		buffer: opts.ExpiryBuffer,
		clk:    opts.Clock,
		logger: opts.Logger,
		status: domainauth.StatusLoading,
	}

	opts.Store.SetRefreshFunc(c.RefreshSession)
	if opts.Scheduler != nil {
		opts.Scheduler.SetFailureHandler(func(err error) {
			c.ForceLogout(context.Background(), err)
		})
	}
	return c
}

// Status returns the current session status.
func (c *Controller) Status() domainauth.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// User returns a copy of the authenticated user, or nil. A blocked user is
// still reported here; routing blocked accounts to a restricted view is the
// frontend's concern, not the controller's.
func (c *Controller) User() *domainauth.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	user := *c.user
	return &user
}

// Boot runs the startup sequence once per process: restore the stored
// session, refreshing it first if the access token has expired. It always
// resolves the loading state and returns the resulting status; a session that
// cannot be restored ends unauthenticated, never in an error.
func (c *Controller) Boot(ctx context.Context) domainauth.Status {
	storedUser, hasUser := c.store.StoredUser(ctx)
	accessToken, hasAccess := c.store.AccessToken(ctx)
	_, hasRefresh := c.store.RefreshToken(ctx)

	if !hasUser || !hasAccess || !hasRefresh {
		return c.setUnauthenticated(nil)
	}

	if token.Expired(accessToken, c.buffer, c.clk.Now()) {
		if err := c.RefreshSession(ctx); err != nil {
			c.logger.InfoContext(ctx, "stored session could not be refreshed", "error", err)
			if clearErr := c.store.Clear(ctx); clearErr != nil {
				c.logger.WarnContext(ctx, "clear session failed", "error", clearErr)
			}
			return c.setUnauthenticated(nil)
		}
		return c.statusLocked()
	}

	c.store.ScheduleRefresh(accessToken)
	return c.setAuthenticated(*storedUser)
}

// Login authenticates with the remote API and establishes a session. On
// failure the status is unchanged and the server's message is surfaced to the
// caller.
func (c *Controller) Login(ctx context.Context, creds domainauth.Credentials) (*domainauth.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	resp, err := c.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	return c.establish(ctx, resp)
}

// Register creates an account and establishes a session, mirroring Login.
func (c *Controller) Register(ctx context.Context, reg domainauth.Registration) (*domainauth.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	resp, err := c.api.Register(ctx, reg)
	if err != nil {
		return nil, err
	}

	return c.establish(ctx, resp)
}

// Logout clears the session and transitions to unauthenticated
// unconditionally. No server round-trip is required for logout to succeed
// locally; a storage cleanup failure is reported but the state still flips.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.store.Clear(ctx)
	c.setUnauthenticated(nil)
	return err
}

// RefreshSession exchanges the stored refresh token for a new token pair and
// persists the result. Callers decide what a failure means: the boot sequence
// and the scheduler treat it as fatal to the session.
func (c *Controller) RefreshSession(ctx context.Context) error {
	refreshToken, ok := c.store.RefreshToken(ctx)
	if !ok {
		return apperrors.Unauthorized("no refresh token available")
	}

	resp, err := c.api.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	if err := c.store.SetSession(ctx, resp.Tokens(), resp.User); err != nil {
		return err
	}

	c.mu.Lock()
	user := resp.User
	c.user = &user
	if c.status == domainauth.StatusLoading {
		c.status = domainauth.StatusAuthenticated
	}
	c.mu.Unlock()
	return nil
}

// ForceLogout clears the session after a fatal refresh failure and drops to
// unauthenticated. This path is deliberately quiet: session expiry is an
// expected lifecycle event, not a user mistake.
func (c *Controller) ForceLogout(ctx context.Context, cause error) {
	c.logger.InfoContext(ctx, "session expired, logging out", "cause", cause)
	if err := c.store.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "clear session failed", "error", err)
	}
	c.setUnauthenticated(nil)
}

func (c *Controller) establish(ctx context.Context, resp *domainauth.Response) (*domainauth.User, error) {
	if err := c.store.SetSession(ctx, resp.Tokens(), resp.User); err != nil {
		return nil, err
	}
	c.setAuthenticated(resp.User)
	user := resp.User
	return &user, nil
}

func (c *Controller) setAuthenticated(user domainauth.User) domainauth.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = domainauth.StatusAuthenticated
	c.user = &user
	return c.status
}

func (c *Controller) setUnauthenticated(user *domainauth.User) domainauth.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = domainauth.StatusUnauthenticated
	c.user = user
	return c.status
}

func (c *Controller) statusLocked() domainauth.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
