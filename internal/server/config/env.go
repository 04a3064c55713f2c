package config

import "os"

// parseEnv reads DATABASE_URL and REDIS_URL, the variables hosting
// platforms usually inject.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("DATABASE_URL"); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("REDIS_URL"); ok && v != "" {
		config.RedisURL = v
	}
}
