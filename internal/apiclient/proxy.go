package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mocksmith/adminctl/internal/domain/model"
	apperrors "github.com/mocksmith/adminctl/internal/errors"
)

// ListProxyEndpoints returns all configured proxy endpoints.
func (c *Client) ListProxyEndpoints(ctx context.Context) ([]model.ProxyEndpoint, error) {
	var endpoints []model.ProxyEndpoint
	if err := c.do(ctx, http.MethodGet, "/api-proxy/endpoints", nil, &endpoints); err != nil {
		return nil, err
	}
	return endpoints, nil
}

// GetProxyEndpoint returns a single proxy endpoint by id.
func (c *Client) GetProxyEndpoint(ctx context.Context, id string) (*model.ProxyEndpoint, error) {
	var endpoint model.ProxyEndpoint
	if err := c.do(ctx, http.MethodGet, "/api-proxy/endpoints/"+url.PathEscape(id), nil, &endpoint); err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// CreateProxyEndpoint creates a proxy endpoint.
func (c *Client) CreateProxyEndpoint(ctx context.Context, req model.CreateProxyEndpointRequest) (*model.ProxyEndpoint, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var endpoint model.ProxyEndpoint
	if err := c.do(ctx, http.MethodPost, "/api-proxy/endpoints", req, &endpoint); err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// UpdateProxyEndpoint applies a partial update to a proxy endpoint.
func (c *Client) UpdateProxyEndpoint(ctx context.Context, id string, req model.UpdateProxyEndpointRequest) (*model.ProxyEndpoint, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var endpoint model.ProxyEndpoint
	if err := c.do(ctx, http.MethodPatch, "/api-proxy/endpoints/"+url.PathEscape(id), req, &endpoint); err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// DeleteProxyEndpoint removes a proxy endpoint.
func (c *Client) DeleteProxyEndpoint(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api-proxy/endpoints/"+url.PathEscape(id), nil, nil)
}

// ProxyStats returns the proxy-endpoint capacity counters. Same shape as the
// mock side.
func (c *Client) ProxyStats(ctx context.Context) (*model.EndpointStats, error) {
	var stats model.EndpointStats
	if err := c.do(ctx, http.MethodGet, "/api-proxy/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
