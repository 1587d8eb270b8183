package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mocksmith/adminctl/internal/clock"
	"github.com/mocksmith/adminctl/internal/token"
)

// DefaultRefreshWindow is how long before access-token expiry the proactive
// refresh fires.
const DefaultRefreshWindow = time.Minute

// RefreshFunc performs one refresh of the session against the remote API.
type RefreshFunc func(ctx context.Context) error

// Scheduler owns the single proactive-refresh timer. It is either idle (no
// pending timer) or armed (exactly one pending timer); arming always cancels
// the previous timer first, so the most recent Schedule call wins.
type Scheduler struct {
	window time.Duration
	clk    clock.Clock
	logger *slog.Logger

	mu        sync.Mutex
	timer     *time.Timer
	onFailure func(error)
}

// SchedulerOptions groups dependencies for Scheduler.
type SchedulerOptions struct {
	// Window is the lead time before expiry at which the refresh fires.
	// Zero means DefaultRefreshWindow.
	Window time.Duration
	Clock  clock.Clock
	Logger *slog.Logger
}

// NewScheduler constructs an idle Scheduler.
func NewScheduler(opts SchedulerOptions) *Scheduler {
	if opts.Window <= 0 {
		opts.Window = DefaultRefreshWindow
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scheduler{
		window: opts.Window,
		clk:    opts.Clock,
		logger: opts.Logger,
	}
}

// SetFailureHandler registers the hook invoked when a fired refresh fails.
// A failed proactive refresh is fatal to the session: the handler is expected
// to clear it rather than retry, since retrying could mask a revoked refresh
// token.
func (s *Scheduler) SetFailureHandler(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFailure = fn
}

// Schedule cancels any pending timer and arms a new one that invokes refresh
// shortly before accessToken expires. Tokens without an exp claim, and tokens
// already inside the refresh window, leave the scheduler idle: the reactive
// 401 path covers those, and refreshing synchronously here would invite
// re-entrant refresh storms.
func (s *Scheduler) Schedule(accessToken string, refresh RefreshFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	claims := token.Decode(accessToken)
	if !claims.HasExpiry() {
		return
	}

	delay := claims.ExpiresAt.Add(-s.window).Sub(s.clk.Now())
	if delay <= 0 {
		return
	}

	s.timer = time.AfterFunc(delay, func() {
		s.fire(refresh)
	})
}

// Cancel stops any pending timer. Safe to call in any state.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Armed reports whether a refresh timer is pending.
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Scheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) fire(refresh RefreshFunc) {
	s.mu.Lock()
	s.timer = nil
	onFailure := s.onFailure
	s.mu.Unlock()

	if refresh == nil {
		return
	}

	ctx := context.Background()
	if err := refresh(ctx); err != nil {
		s.logger.ErrorContext(ctx, "proactive token refresh failed", "error", err)
		if onFailure != nil {
			onFailure(err)
		}
	}
}
