package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// parseEnv overlays OLHAR_* environment variables; unset variables leave
// the current value alone.
func parseEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}
