package apiclient

import (
	"context"
	"net/http"
	"net/url"

	domainauth "github.com/mocksmith/adminctl/internal/domain/auth"
	"github.com/mocksmith/adminctl/internal/domain/model"
	apperrors "github.com/mocksmith/adminctl/internal/errors"
)

// ListUsers returns all user accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]domainauth.User, error) {
	var users []domainauth.User
	if err := c.do(ctx, http.MethodGet, "/api-auth/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a single user account by id.
func (c *Client) GetUser(ctx context.Context, id string) (*domainauth.User, error) {
	var user domainauth.User
	if err := c.do(ctx, http.MethodGet, "/api-auth/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user account directly, bypassing self-registration.
func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (*domainauth.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var user domainauth.User
	if err := c.do(ctx, http.MethodPost, "/api-auth/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user account.
func (c *Client) UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) (*domainauth.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var user domainauth.User
	if err := c.do(ctx, http.MethodPatch, "/api-auth/users/"+url.PathEscape(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api-auth/users/"+url.PathEscape(id), nil, nil)
}
