// Package catalogapi is a development implementation of the product catalog
// REST API consumed by the admin UI.
package catalogapi

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the development backend.
type Config struct {
	Addr string `envconfig:"CATALOG_API_ADDR" default:":8081"`
	// PGDSN selects the Postgres repository; empty keeps products in memory.
	PGDSN string `envconfig:"CATALOG_API_PG_DSN"`
	// Envelope wraps list responses as {"results": [...]}.
	Envelope  bool   `envconfig:"CATALOG_API_ENVELOPE" default:"false"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
