package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// dotEnvFile is loaded, if present, before reading the environment.
// Variables already set in the process environment take precedence.
var dotEnvFile = ".env"

// parseEnv overlays config with environment variables:
//
//	PORT              listening port, becomes ":<PORT>"
//	MONGODB_URI       store connection string
//	MONGODB_DATABASE  database name
//	JWT_SECRET        token signing secret
//	BCRYPT_COST       password hash cost
//	AUTH_RATE_LIMIT   register/login requests per minute per IP
//
// Malformed integers are ignored and the previous value kept.
func parseEnv(config *Config) {
	_ = godotenv.Load(dotEnvFile)

	if port := os.Getenv("PORT"); port != "" {
		config.EndpointAddr = ":" + port
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		config.MongoURI = uri
	}
	if name := os.Getenv("MONGODB_DATABASE"); name != "" {
		config.DatabaseName = name
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.SecretKey = secret
	}
	config.PasswordHashCost = envInt("BCRYPT_COST", config.PasswordHashCost)
	config.AuthRateLimit = envInt("AUTH_RATE_LIMIT", config.AuthRateLimit)
}

func envInt(key string, def int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return def
}
