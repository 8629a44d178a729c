package repository

import (
	"context"
	"sync"
	"time"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/metrics"
)

// In-memory Store implementation.
//
// Uniqueness: each roster pairs an insertion-ordered slice (what listings
// return) with a membership set, so the no-duplicate invariant is enforced
// structurally rather than by scanning.
//
// Every check-then-mutate sequence runs under one registry-wide mutex. At
// nine activities a single lock serializes signups the way the original
// single-threaded runtime did, without per-activity bookkeeping.

// roster is the mutable registry entry for one activity.
type roster struct {
	activity model.Activity
	members  map[string]struct{}
}

// RosterStore is the in-memory registry seeded at construction time.
type RosterStore struct {
	mu         sync.RWMutex
	activities map[string]*roster
}

// NewRosterStore builds a registry from the default seed unless
// WithActivities overrides it.
func NewRosterStore(_ context.Context, opts ...Option) *RosterStore {
	s := &RosterStore{
		activities: make(map[string]*roster),
	}
	cfg := storeConfig{seed: DefaultSeed()}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, a := range cfg.seed {
		s.add(a)
	}

	metrics.UpdateActivitiesTotal(len(s.activities))
	metrics.UpdateParticipantsTotal(s.participantTotalLocked())
	return s
}

// add installs one seed activity, collapsing any duplicate emails.
func (s *RosterStore) add(a model.Activity) {
	r := &roster{
		activity: model.Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
		},
		members: make(map[string]struct{}, len(a.Participants)),
	}
	for _, email := range a.Participants {
		if _, dup := r.members[email]; dup {
			continue
		}
		r.members[email] = struct{}{}
		r.activity.Participants = append(r.activity.Participants, email)
	}
	s.activities[a.Name] = r
}

// List returns a deep-copied snapshot of the registry.
func (s *RosterStore) List(_ context.Context) (map[string]model.Activity, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Activity, len(s.activities))
	for name, r := range s.activities {
		out[name] = r.activity.Clone()
	}
	return out, nil
}

// Get returns a deep-copied snapshot of one activity.
func (s *RosterStore) Get(_ context.Context, name string) (model.Activity, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	return r.activity.Clone(), nil
}

// Signup appends email to the activity's roster.
func (s *RosterStore) Signup(_ context.Context, name, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	if _, dup := r.members[email]; dup {
		return ErrAlreadySignedUp
	}
	r.members[email] = struct{}{}
	r.activity.Participants = append(r.activity.Participants, email)

	metrics.UpdateParticipantsTotal(s.participantTotalLocked())
	return nil
}

// Unregister removes email from the activity's roster, keeping the
// remaining insertion order intact.
func (s *RosterStore) Unregister(_ context.Context, name, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	if _, member := r.members[email]; !member {
		return ErrNotRegistered
	}
	delete(r.members, email)
	for i, p := range r.activity.Participants {
		if p == email {
			r.activity.Participants = append(r.activity.Participants[:i], r.activity.Participants[i+1:]...)
			break
		}
	}

	metrics.UpdateParticipantsTotal(s.participantTotalLocked())
	return nil
}

// Count returns the number of activities in the registry.
func (s *RosterStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// ParticipantCount returns the total number of roster entries.
func (s *RosterStore) ParticipantCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.participantTotalLocked()
}

// participantTotalLocked sums roster sizes. Callers must hold mu.
func (s *RosterStore) participantTotalLocked() int {
	total := 0
	for _, r := range s.activities {
		total += len(r.members)
	}
	return total
}
