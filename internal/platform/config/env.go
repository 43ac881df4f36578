// Package config loads service configuration from the environment and
// carries the shared fatal-exit helper for command entry points. CRM
// variables follow the CRM_* naming convention; each command declares
// its own tagged config struct.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from environment variables using its env tags.
// target must be a non-nil struct pointer.
func ParseEnv(target any) error {
	if target == nil {
		return errors.New("parse env: target is required")
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env into %T: %w", target, err)
	}
	return nil
}
