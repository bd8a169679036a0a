package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todoserver/internal/flagx"
	"github.com/dmitrijs2005/todoserver/internal/timex"
)

// JsonConfig mirrors Config for JSON decoding. Pointer fields distinguish
// "absent" from zero so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddr     *string         `json:"endpoint_addr"`
	MongoURI         *string         `json:"mongodb_uri"`
	DatabaseName     *string         `json:"database_name"`
	SecretKey        *string         `json:"secret_key"`
	PasswordHashCost *int            `json:"password_hash_cost"`
	AuthRateLimit    *int            `json:"auth_rate_limit"`
	ConnectTimeout   *timex.Duration `json:"connect_timeout"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config (or CONFIG) into config.
// Nothing happens when no file is given. An unreadable file or invalid JSON
// panics: a misconfigured server must not start.
func parseJson(config *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.MongoURI != nil {
		config.MongoURI = *c.MongoURI
	}
	if c.DatabaseName != nil {
		config.DatabaseName = *c.DatabaseName
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.PasswordHashCost != nil {
		config.PasswordHashCost = *c.PasswordHashCost
	}
	if c.AuthRateLimit != nil {
		config.AuthRateLimit = *c.AuthRateLimit
	}
	if c.ConnectTimeout != nil {
		config.ConnectTimeout = c.ConnectTimeout.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
