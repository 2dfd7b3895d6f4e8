package agent

import (
	"errors"
	"fmt"
	"time"
)

const defaultMaxRounds = 25

// Config stores the coarse grained runtime settings for an Agent run.
type Config struct {
	// MaxRounds bounds the number of service round-trips in one run, so a
	// model that keeps requesting tools cannot loop forever. Zero selects
	// the default.
	MaxRounds int

	// Timeout bounds the whole run. Zero means no deadline beyond the
	// caller's context.
	Timeout time.Duration
}

// Validate enforces minimal structural guarantees.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("max rounds cannot be negative: %d", c.MaxRounds)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative: %s", c.Timeout)
	}
	return nil
}

func (c Config) maxRounds() int {
	if c.MaxRounds <= 0 {
		return defaultMaxRounds
	}
	return c.MaxRounds
}
