//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxEndpointNameLen = 100

	// MaxMockDelayMs caps the artificial response delay so a misconfigured
	// endpoint cannot tie up the backend for longer than a minute.
	MaxMockDelayMs = 60000

	minStatusCode = 100
	maxStatusCode = 599
)

// ContentType is the response content type served by a mock endpoint.
type ContentType string

const (
	ContentTypeJSON ContentType = "application/json"
	ContentTypeXML  ContentType = "application/xml"
	ContentTypeText ContentType = "text/plain"
	ContentTypeHTML ContentType = "text/html"
)

// Valid reports whether the content type is one the server serves.
func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeJSON, ContentTypeXML, ContentTypeText, ContentTypeHTML:
		return true
	default:
		return false
	}
}

// MockEndpoint is a configured mock HTTP endpoint as returned by the server.
type MockEndpoint struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Path         string          `json:"path"`
	GroupID      *string         `json:"groupId,omitempty"`
	ResponseData json.RawMessage `json:"responseData"`
	ContentType  ContentType     `json:"contentType"`
	StatusCode   int             `json:"statusCode"`
	Enabled      bool            `json:"enabled"`
	DelayMs      int             `json:"delayMs"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CreateMockEndpointRequest represents parameters to create a MockEndpoint.
type CreateMockEndpointRequest struct {
	Name         string          `json:"name"`
	Path         string          `json:"path"`
	GroupID      *string         `json:"groupId,omitempty"`
	ResponseData json.RawMessage `json:"responseData"`
	ContentType  ContentType     `json:"contentType,omitempty"`
	StatusCode   *int            `json:"statusCode,omitempty"`
	Enabled      *bool           `json:"enabled,omitempty"`
	DelayMs      *int            `json:"delayMs,omitempty"`
}

// UpdateMockEndpointRequest represents parameters to update a MockEndpoint.
// All fields are optional; nil means "leave unchanged".
type UpdateMockEndpointRequest struct {
	Name         *string         `json:"name,omitempty"`
	Path         *string         `json:"path,omitempty"`
	GroupID      *string         `json:"groupId,omitempty"`
	ResponseData json.RawMessage `json:"responseData,omitempty"`
	ContentType  *ContentType    `json:"contentType,omitempty"`
	StatusCode   *int            `json:"statusCode,omitempty"`
	Enabled      *bool           `json:"enabled,omitempty"`
	DelayMs      *int            `json:"delayMs,omitempty"`
}

func validateEndpointName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxEndpointNameLen {
		return errors.New("name cannot exceed 100 characters")
	}
	return nil
}

func validateEndpointPath(path string) error {
	if path == "" {
		return errors.New("path is required")
	}
	if !strings.HasPrefix(path, "/") {
		return errors.New("path must start with /")
	}
	return nil
}

func validateStatusCode(code int) error {
	if code < minStatusCode || code > maxStatusCode {
		return errors.New("status code must be between 100 and 599")
	}
	return nil
}

// Validate validates CreateMockEndpointRequest against the server's rules.
func (r *CreateMockEndpointRequest) Validate() error {
	if err := validateEndpointName(r.Name); err != nil {
		return err
	}
	if err := validateEndpointPath(r.Path); err != nil {
		return err
	}
	if len(r.ResponseData) == 0 {
		return errors.New("response data is required")
	}
	if r.ContentType == "" {
		r.ContentType = ContentTypeJSON
	}
	if !r.ContentType.Valid() {
		return errors.New("invalid content type")
	}
	if r.StatusCode != nil {
		if err := validateStatusCode(*r.StatusCode); err != nil {
			return err
		}
	}
	if r.DelayMs != nil && (*r.DelayMs < 0 || *r.DelayMs > MaxMockDelayMs) {
		return errors.New("delay must be between 0 and 60000 ms")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateMockEndpointRequest.
func (r *UpdateMockEndpointRequest) HasUpdates() bool {
	return r.Name != nil || r.Path != nil || r.GroupID != nil || len(r.ResponseData) > 0 ||
		r.ContentType != nil || r.StatusCode != nil || r.Enabled != nil || r.DelayMs != nil
}

// Validate validates UpdateMockEndpointRequest, ensuring at least one field is
// set and values are sane.
func (r *UpdateMockEndpointRequest) Validate() error {
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
	if r.ContentType != nil && !r.ContentType.Valid() {
		return errors.New("invalid content type")
	}
	if r.StatusCode != nil {
		if err := validateStatusCode(*r.StatusCode); err != nil {
			return err
		}
	}
	if r.DelayMs != nil && (*r.DelayMs < 0 || *r.DelayMs > MaxMockDelayMs) {
		return errors.New("delay must be between 0 and 60000 ms")
	}
	return nil
}
