package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mocksmith/adminctl/internal/domain/model"
	apperrors "github.com/mocksmith/adminctl/internal/errors"
)

// ListMockEndpoints returns all configured mock endpoints.
func (c *Client) ListMockEndpoints(ctx context.Context) ([]model.MockEndpoint, error) {
	var endpoints []model.MockEndpoint
	if err := c.do(ctx, http.MethodGet, "/api-mock/endpoints", nil, &endpoints); err != nil {
		return nil, err
	}
	return endpoints, nil
}

// GetMockEndpoint returns a single mock endpoint by id.
func (c *Client) GetMockEndpoint(ctx context.Context, id string) (*model.MockEndpoint, error) {
	var endpoint model.MockEndpoint
	if err := c.do(ctx, http.MethodGet, "/api-mock/endpoints/"+url.PathEscape(id), nil, &endpoint); err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// CreateMockEndpoint creates a mock endpoint.
func (c *Client) CreateMockEndpoint(ctx context.Context, req model.CreateMockEndpointRequest) (*model.MockEndpoint, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var endpoint model.MockEndpoint
	if err := c.do(ctx, http.MethodPost, "/api-mock/endpoints", req, &endpoint); err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// UpdateMockEndpoint applies a partial update to a mock endpoint.
func (c *Client) UpdateMockEndpoint(ctx context.Context, id string, req model.UpdateMockEndpointRequest) (*model.MockEndpoint, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var endpoint model.MockEndpoint
	if err := c.do(ctx, http.MethodPatch, "/api-mock/endpoints/"+url.PathEscape(id), req, &endpoint); err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// DeleteMockEndpoint removes a mock endpoint.
func (c *Client) DeleteMockEndpoint(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api-mock/endpoints/"+url.PathEscape(id), nil, nil)
}

// MockStats returns the mock-endpoint capacity counters.
func (c *Client) MockStats(ctx context.Context) (*model.EndpointStats, error) {
	var stats model.EndpointStats
	if err := c.do(ctx, http.MethodGet, "/api-mock/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
