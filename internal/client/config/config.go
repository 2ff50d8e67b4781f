// Package config handles configuration for the sync engine: defaults,
// optional JSON overlay, then command-line flags.
package config

import "time"

// Config holds runtime settings for the guest sync engine.
//
// Fields:
//   - StoreBaseURL: base URL of the guest store HTTP API.
//   - RequestTimeout: per-call deadline for gateway requests.
//   - PollGraceDelay: pause before the first reconciliation poll, to let
//     the UI settle after activation.
//   - PollInterval: steady-state polling period for linked accounts.
//   - TokenSecret: HMAC secret for the HS256 service tokens.
//   - TokenValidityDuration: lifetime of each minted token.
type Config struct {
	StoreBaseURL          string
	RequestTimeout        time.Duration
	PollGraceDelay        time.Duration
	PollInterval          time.Duration
	TokenSecret           string
	TokenValidityDuration time.Duration
}

// LoadDefaults populates c with development defaults.
// NOTE: TokenSecret must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.StoreBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.PollGraceDelay = 3 * time.Second
	c.PollInterval = 30 * time.Second
	c.TokenSecret = "secretKey"
	c.TokenValidityDuration = time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
