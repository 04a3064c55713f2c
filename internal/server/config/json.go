package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coinkeeper/internal/flagx"
	"github.com/dmitrijs2005/coinkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// accept both "10s" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	Storage          string         `json:"storage"`
	DatabaseDSN      string         `json:"database_dsn"`
	RedisURL         string         `json:"redis_url"`
	LogLevel         string         `json:"log_level"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the JSON file named by -c/-config (or the
// COINKEEPER_CONFIG environment variable). Keys absent from the file keep
// their current value. An unreadable or malformed file panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFilePath(ConfigEnvKey)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.Storage, c.Storage)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.LogLevel, c.LogLevel)
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
