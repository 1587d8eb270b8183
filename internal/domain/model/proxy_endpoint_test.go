package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validCreateProxyRequest() CreateProxyEndpointRequest {
	return CreateProxyEndpointRequest{
		Name: "upstream search",
		Path: "/search",
	}
}

func TestCreateProxyEndpointRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateProxyEndpointRequest)
		wantErr string
	}{
		{name: "valid minimal", mutate: func(*CreateProxyEndpointRequest) {}},
		{
			name:   "valid with https base url",
			mutate: func(r *CreateProxyEndpointRequest) { r.BaseURL = strPtr("https://api.example.com") },
		},
		{
			name:   "empty base url uses server default",
			mutate: func(r *CreateProxyEndpointRequest) { r.BaseURL = strPtr("") },
		},
		{
			name:    "base url without scheme",
			mutate:  func(r *CreateProxyEndpointRequest) { r.BaseURL = strPtr("api.example.com") },
			wantErr: "base URL must start with http:// or https://",
		},
		{
			name:    "empty name",
			mutate:  func(r *CreateProxyEndpointRequest) { r.Name = "" },
			wantErr: "name is required and cannot be empty",
		},
		{
			name:    "relative path",
			mutate:  func(r *CreateProxyEndpointRequest) { r.Path = "search" },
			wantErr: "path must start with /",
		},
		{
			name:    "status override out of range",
			mutate:  func(r *CreateProxyEndpointRequest) { r.StatusCodeOverride = intPtr(42) },
			wantErr: "status code must be between 100 and 599",
		},
		{
			name:    "delay above proxy cap",
			mutate:  func(r *CreateProxyEndpointRequest) { r.DelayMs = intPtr(MaxProxyDelayMs + 1) },
			wantErr: "delay must be between 0 and 10000 ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateProxyRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestUpdateProxyEndpointRequest_Validate(t *testing.T) {
	t.Run("no fields set", func(t *testing.T) {
		req := UpdateProxyEndpointRequest{}
		require.EqualError(t, req.Validate(), "at least one field must be updated")
	})

	t.Run("toggle cache only", func(t *testing.T) {
		req := UpdateProxyEndpointRequest{UseCache: boolPtr(true)}
		require.NoError(t, req.Validate())
	})

	t.Run("proxy delay cap is tighter than mock cap", func(t *testing.T) {
		req := UpdateProxyEndpointRequest{DelayMs: intPtr(20000)}
		require.EqualError(t, req.Validate(), "delay must be between 0 and 10000 ms")
	})
}
