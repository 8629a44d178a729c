// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"sort"

	"github.com/mergington/activities/internal/domain/model"
)

// SeedActivity is the file-configurable shape of one activity.
type SeedActivity struct {
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"`
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// Activities optionally replaces the built-in activity seed. Only
	// settable through the YAML config file; leave empty to use the
	// default school roster.
	Activities map[string]SeedActivity `koanf:"activities"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel: "info",
		Addr:     ":8000",
	}
}

// Seed converts the configured activity override into domain records,
// sorted by name for deterministic startup. Returns nil when no override
// is configured.
func (c *Config) Seed() []model.Activity {
	if len(c.Activities) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.Activities))
	for name := range c.Activities {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.Activity, 0, len(names))
	for _, name := range names {
		a := c.Activities[name]
		out = append(out, model.Activity{
			Name:            name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		})
	}
	return out
}
