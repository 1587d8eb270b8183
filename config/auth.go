package config

import "time"

const (
	defaultRefreshWindowMs = 60000
	defaultExpiryBufferMs  = 5000
)

// AuthConfig contains session lifecycle configuration. The knobs are
// millisecond-denominated to match the server team's conventions for these
// settings.
type AuthConfig struct {
	// RefreshWindowMs is how long before access-token expiry the proactive
	// refresh fires.
	RefreshWindowMs int `env:"REFRESH_WINDOW_MS" envDefault:"60000"`

	// ExpiryBufferMs is the safety margin applied when judging whether a
	// stored access token is still usable.
	ExpiryBufferMs int `env:"EXPIRY_BUFFER_MS" envDefault:"5000"`
}

// Sanitize applies guardrails to auth configuration. Non-positive values fall
// back to the defaults; a zero refresh window would schedule refreshes at the
// moment of expiry, which defeats the point.
func (c *AuthConfig) Sanitize() {
	if c.RefreshWindowMs <= 0 {
		c.RefreshWindowMs = defaultRefreshWindowMs
	}
	if c.ExpiryBufferMs <= 0 {
		c.ExpiryBufferMs = defaultExpiryBufferMs
	}
}

// RefreshWindow returns the refresh lead time as a duration.
func (c *AuthConfig) RefreshWindow() time.Duration {
	return time.Duration(c.RefreshWindowMs) * time.Millisecond
}

// ExpiryBuffer returns the expiry safety margin as a duration.
func (c *AuthConfig) ExpiryBuffer() time.Duration {
	return time.Duration(c.ExpiryBufferMs) * time.Millisecond
}
