package apiclient

import (
	"context"
	"net/http"

	domainauth "github.com/mocksmith/adminctl/internal/domain/auth"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates with name and password. The response carries the token
// pair plus the user profile; establishing the session from it is the
// controller's job.
func (c *Client) Login(ctx context.Context, creds domainauth.Credentials) (*domainauth.Response, error) {
	var resp domainauth.Response
	if err := c.send(ctx, http.MethodPost, "/api-auth/login", creds, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the same shape as Login.
func (c *Client) Register(ctx context.Context, reg domainauth.Registration) (*domainauth.Response, error) {
	var resp domainauth.Response
	if err := c.send(ctx, http.MethodPost, "/api-auth/register", reg, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a fresh token pair. Concurrent calls
// with the same refresh token share one network request, so the proactive
// scheduler and the reactive 401 path cannot race each other into duplicate
// refreshes.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domainauth.Response, error) {
	result, err, _ := c.refreshGroup.Do(refreshToken, func() (any, error) {
		var resp domainauth.Response
		if err := c.send(ctx, http.MethodPost, "/api-auth/refresh", refreshRequest{RefreshToken: refreshToken}, &resp, false); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domainauth.Response), nil
}
