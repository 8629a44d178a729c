package repository

import "github.com/mergington/activities/internal/domain/model"

// storeConfig holds construction-time settings for the RosterStore.
type storeConfig struct {
	seed []model.Activity
}

// Option applies a configuration option to the RosterStore.
type Option func(*storeConfig)

// WithActivities replaces the default seed. Empty slices are ignored so a
// missing override falls back to the built-in activity list.
func WithActivities(seed []model.Activity) Option {
	return func(c *storeConfig) {
		if len(seed) > 0 {
			c.seed = seed
		}
	}
}
