package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/placementportal/internal/flagx"
	"github.com/dmitrijs2005/placementportal/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// distinguish "absent" from zero values so a partial file only overrides
// what it names.
type JsonConfig struct {
	EndpointAddrHTTP        string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC        string          `json:"endpoint_addr_grpc"`
	DatabaseDriver          string          `json:"database_driver"`
	DatabaseDSN             string          `json:"database_dsn"`
	SecretKey               string          `json:"secret_key"`
	BcryptCost              *int            `json:"bcrypt_cost"`
	StrictStatusTransitions *bool           `json:"strict_status_transitions"`
	AllowedOrigins          string          `json:"allowed_origins"`
	AuthRateLimit           *int            `json:"auth_rate_limit"`
	HealthCheckInterval     *timex.Duration `json:"health_check_interval"`
	LogLevel                string          `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flag. Without the flag nothing is loaded. An unreadable or
// invalid file panics, as a misconfigured server must not start.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AllowedOrigins, c.AllowedOrigins)
	setString(&config.LogLevel, c.LogLevel)

	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.StrictStatusTransitions != nil {
		config.StrictStatusTransitions = *c.StrictStatusTransitions
	}
	if c.AuthRateLimit != nil {
		config.AuthRateLimit = *c.AuthRateLimit
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
