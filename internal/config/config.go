package config

import (
	"github.com/kelseyhightower/envconfig"

	"pos_gateway/internal/posapi"
)

// Config defines all configurable parameters for the gateway, sourced from
// environment variables (loaded from .env for local runs).
type Config struct {
	Addr string `envconfig:"GATEWAY_ADDR" default:":8081"`

	API posapi.Config
}

// Load binds the environment to a typed Config. Missing required values
// are reported on startup.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
