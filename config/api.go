package config

import "time"

// APIConfig contains the remote admin API connection settings.
type APIConfig struct {
	// BaseURL is the API origin all requests are issued against.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Timeout bounds a single request attempt.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration.
func (c *APIConfig) Sanitize() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}
