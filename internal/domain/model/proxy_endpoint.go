//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// MaxProxyDelayMs caps the artificial delay for proxied responses. Proxies
// already pay upstream latency, so the cap is tighter than for mocks.
const MaxProxyDelayMs = 10000

// ProxyEndpoint is a configured reverse-proxy endpoint as returned by the
// server. Requests to /api-proxy/serve<path> are forwarded to BaseURL.
type ProxyEndpoint struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Path               string    `json:"path"`
	BaseURL            *string   `json:"baseUrl,omitempty"`
	GroupID            *string   `json:"groupId,omitempty"`
	StatusCodeOverride *int      `json:"statusCodeOverride,omitempty"`
	Enabled            bool      `json:"enabled"`
	UseCache           bool      `json:"useCache"`
	DelayMs            int       `json:"delayMs"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CreateProxyEndpointRequest represents parameters to create a ProxyEndpoint.
type CreateProxyEndpointRequest struct {
	Name               string  `json:"name"`
	Path               string  `json:"path"`
	BaseURL            *string `json:"baseUrl,omitempty"`
	GroupID            *string `json:"groupId,omitempty"`
	StatusCodeOverride *int    `json:"statusCodeOverride,omitempty"`
	Enabled            *bool   `json:"enabled,omitempty"`
	UseCache           *bool   `json:"useCache,omitempty"`
	DelayMs            *int    `json:"delayMs,omitempty"`
}

// UpdateProxyEndpointRequest represents parameters to update a ProxyEndpoint.
// All fields are optional; nil means "leave unchanged".
type UpdateProxyEndpointRequest struct {
	Name               *string `json:"name,omitempty"`
	Path               *string `json:"path,omitempty"`
	BaseURL            *string `json:"baseUrl,omitempty"`
	GroupID            *string `json:"groupId,omitempty"`
	StatusCodeOverride *int    `json:"statusCodeOverride,omitempty"`
	Enabled            *bool   `json:"enabled,omitempty"`
	UseCache           *bool   `json:"useCache,omitempty"`
	DelayMs            *int    `json:"delayMs,omitempty"`
}

func validateProxyBaseURL(baseURL string) error {
	if baseURL == "" {
		return nil // empty means "use the server default upstream"
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return errors.New("base URL must start with http:// or https://")
	}
	return nil
}

// Validate validates CreateProxyEndpointRequest against the server's rules.
func (r *CreateProxyEndpointRequest) Validate() error {
	if err := validateEndpointName(r.Name); err != nil {
		return err
	}
	if err := validateEndpointPath(r.Path); err != nil {
		return err
	}
	if r.BaseURL != nil {
		if err := validateProxyBaseURL(*r.BaseURL); err != nil {
			return err
		}
	}
	if r.StatusCodeOverride != nil {
		if err := validateStatusCode(*r.StatusCodeOverride); err != nil {
			return err
		}
	}
	if r.DelayMs != nil && (*r.DelayMs < 0 || *r.DelayMs > MaxProxyDelayMs) {
		return errors.New("delay must be between 0 and 10000 ms")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateProxyEndpointRequest.
func (r *UpdateProxyEndpointRequest) HasUpdates() bool {
	return r.Name != nil || r.Path != nil || r.BaseURL != nil || r.GroupID != nil ||
		r.StatusCodeOverride != nil || r.Enabled != nil || r.UseCache != nil || r.DelayMs != nil
}

// Validate validates UpdateProxyEndpointRequest, ensuring at least one field
// is set and values are sane.
func (r *UpdateProxyEndpointRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		if err := validateEndpointName(*r.Name); err != nil {
			return err
		}
	}
	if r.Path != nil {
		if err := validateEndpointPath(*r.Path); err != nil {
			return err
		}
	}
	if r.BaseURL != nil {
		if err := validateProxyBaseURL(*r.BaseURL); err != nil {
			return err
		}
	}
	if r.StatusCodeOverride != nil {
		if err := validateStatusCode(*r.StatusCodeOverride); err != nil {
			return err
		}
	}
	if r.DelayMs != nil && (*r.DelayMs < 0 || *r.DelayMs > MaxProxyDelayMs) {
		return errors.New("delay must be between 0 and 10000 ms")
	}
	return nil
}
