// Package apiclient is the typed HTTP client for the admin API. It attaches
// the session's bearer token to outgoing requests and recovers from a 401 by
// refreshing the access token and retrying the request exactly once.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/mocksmith/adminctl/internal/errors"
	"github.com/mocksmith/adminctl/internal/session"
)

// DefaultTimeout bounds a single request attempt when the caller's context
// carries no deadline of its own.
const DefaultTimeout = 30 * time.Second

// Options groups dependencies for Client.
type Options struct {
	// BaseURL is the API origin, e.g. "http://localhost:8080". A trailing
	// slash is tolerated.
	BaseURL string

	// Timeout applies per request attempt. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the underlying transport, mainly for tests.
	HTTPClient *http.Client

	Store  *session.Store
	Logger *slog.Logger

	// OnSessionExpired runs after the client has cleared a session it could
	// not refresh. The controller hooks this to drop to unauthenticated.
	OnSessionExpired func(error)
}

// Client talks to the admin API. Safe for concurrent use; concurrent token
// refreshes for the same refresh token are coalesced into a single call.
type Client struct {
	baseURL          string
	client           *http.Client
	store            *session.Store
	logger           *slog.Logger
	onSessionExpired func(error)

	refreshGroup singleflight.Group
}

// New constructs a Client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		client:           hc,
		store:            opts.Store,
		logger:           logger,
		onSessionExpired: opts.OnSessionExpired,
	}
}

// do issues an authorized request: the current access token goes on the wire
// as a bearer credential, and a 401 triggers one refresh-and-retry.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, true)
}

// send is the shared request path. The auth endpoints themselves use
// authorized=false so a refresh can never recurse into another refresh.
func (c *Client) send(ctx context.Context, method, path string, body, out any, authorized bool) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		payload = encoded
	}

	status, respBody, hadToken, err := c.attempt(ctx, method, path, payload, authorized)
	if err != nil {
		return apperrors.MapTransportError(err)
	}

	// One reactive refresh, one retry. A 401 without a token attached means
	// the caller never had a session, so there is nothing to refresh.
	if status == http.StatusUnauthorized && authorized && hadToken {
		if refreshErr := c.refreshAccessToken(ctx); refreshErr != nil {
			return c.expireSession(ctx, refreshErr)
		}
		status, respBody, _, err = c.attempt(ctx, method, path, payload, authorized)
		if err != nil {
			return apperrors.MapTransportError(err)
		}
	}

	if status < 200 || status >= 300 {
		return apperrors.FromResponse(status, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s %s response", method, path)
	}
	return nil
}

// attempt performs a single HTTP round trip and reads the full body. The
// third return reports whether a bearer token was attached, which gates the
// reactive refresh path.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, authorized bool) (int, []byte, bool, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, false, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	hadToken := false
	if authorized {
		if token, ok := c.store.AccessToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
			hadToken = true
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, hadToken, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "close response body failed", "error", closeErr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, hadToken, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	return resp.StatusCode, respBody, hadToken, nil
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token and persists it. Only the access token is replaced here; the refresh
// token and user snapshot stay as they are until the next full refresh.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	refreshToken, ok := c.store.RefreshToken(ctx)
	if !ok {
		return apperrors.Unauthorized("no refresh token available")
	}

	resp, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	return c.store.UpdateAccessToken(ctx, resp.AccessToken)
}

// expireSession tears down a session whose refresh failed: clear storage,
// notify the controller, and surface a session-expired error carrying the
// refresh failure as its cause. The original request is not retried.
func (c *Client) expireSession(ctx context.Context, cause error) error {
	c.logger.InfoContext(ctx, "token refresh failed, clearing session", "error", cause)
	if err := c.store.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "clear session failed", "error", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired(cause)
	}
	return apperrors.SessionExpired(cause)
}
