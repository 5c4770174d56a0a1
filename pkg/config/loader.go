package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates cfg from environment variables using `env` struct tags.
//
// Example:
//
//	type Config struct {
//	    Port        int    `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
//	    CommerceURL string `env:"COMMERCE_API_URL" envDefault:"http://localhost:3000"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
