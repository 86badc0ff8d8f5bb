package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is read before the environment is consulted. Variables already
// present in the process environment win over the file.
var envFile = ".env"

// parseEnv overlays Config with environment variables.
//
//	ADDRESS                    REST bind address
//	GRPC_ADDRESS               gRPC health bind address
//	DATABASE_DRIVER            pgx | sqlite
//	DATABASE_DSN               connection string
//	JWT_SECRET                 token signing key
//	BCRYPT_COST                password hash work factor
//	STRICT_STATUS_TRANSITIONS  true | false
//	CORS_ORIGINS               comma-separated origins
//	AUTH_RATE_LIMIT            signup/login requests per minute per IP
//	HEALTH_CHECK_INTERVAL      Go duration, e.g. "15s"
//	LOG_LEVEL                  debug | info | warn | error
func parseEnv(config *Config) {
	// a missing .env file is the normal case in containers
	_ = godotenv.Load(envFile)

	config.EndpointAddrHTTP = getEnvAsString("ADDRESS", config.EndpointAddrHTTP)
	config.EndpointAddrGRPC = getEnvAsString("GRPC_ADDRESS", config.EndpointAddrGRPC)
	config.DatabaseDriver = getEnvAsString("DATABASE_DRIVER", config.DatabaseDriver)
	config.DatabaseDSN = getEnvAsString("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnvAsString("JWT_SECRET", config.SecretKey)
	config.BcryptCost = getEnvAsInt("BCRYPT_COST", config.BcryptCost)
	config.StrictStatusTransitions = getEnvAsBool("STRICT_STATUS_TRANSITIONS", config.StrictStatusTransitions)
	config.AllowedOrigins = getEnvAsString("CORS_ORIGINS", config.AllowedOrigins)
	config.AuthRateLimit = getEnvAsInt("AUTH_RATE_LIMIT", config.AuthRateLimit)
	config.HealthCheckInterval = getEnvAsDuration("HEALTH_CHECK_INTERVAL", config.HealthCheckInterval)
	config.LogLevel = getEnvAsString("LOG_LEVEL", config.LogLevel)
}

func getEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
