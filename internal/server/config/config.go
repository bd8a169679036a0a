// Package config handles configuration for the server component: defaults,
// an optional JSON file, environment variables and command-line flags, applied
// in that order.
package config

import "time"

// Config holds runtime settings for the todo server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - MongoURI / DatabaseName: document store connection and database.
//   - SecretKey: HMAC secret for signing auth tokens (HS256).
//   - PasswordHashCost: bcrypt cost for stored password hashes.
//   - AuthRateLimit: requests per minute per client IP allowed on the
//     register and login endpoints; 0 disables the limiter.
//   - ConnectTimeout: bound on the initial connect + ping to the store.
//   - ShutdownTimeout: bound on graceful HTTP shutdown and store disconnect.
type Config struct {
	EndpointAddr     string
	MongoURI         string
	DatabaseName     string
	SecretKey        string
	PasswordHashCost int
	AuthRateLimit    int
	ConnectTimeout   time.Duration
	ShutdownTimeout  time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of local development.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.MongoURI = "mongodb://localhost:27017"
	c.DatabaseName = "TodoApp"
	c.SecretKey = "secretKey"
	c.PasswordHashCost = 10
	c.AuthRateLimit = 10
	c.ConnectTimeout = 10 * time.Second
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
