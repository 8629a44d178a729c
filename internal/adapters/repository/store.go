// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Store provides read/write access to the activity registry.
type Store interface {
	// List returns a snapshot of every activity keyed by name.
	List(ctx context.Context) (map[string]model.Activity, error)

	// Get returns a snapshot of a single activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup appends email to the activity's roster.
	// Returns ErrActivityNotFound if the name is unknown and
	// ErrAlreadySignedUp if the email is already on the roster.
	Signup(ctx context.Context, name, email string) error

	// Unregister removes email from the activity's roster.
	// Returns ErrActivityNotFound if the name is unknown and
	// ErrNotRegistered if the email is not on the roster.
	Unregister(ctx context.Context, name, email string) error

	// Count returns the number of activities in the registry.
	Count(ctx context.Context) int

	// ParticipantCount returns the total number of roster entries
	// across all activities.
	ParticipantCount(ctx context.Context) int
}
