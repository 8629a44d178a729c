// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// ErrNotStarted is returned when an operation is invoked before Start.
var ErrNotStarted = errors.New("service not started")

// Service owns the activity registry and exposes the operations the HTTP
// layer depends on. The registry is created in Start and lives for the
// process lifetime; there is no teardown beyond Stop flipping the flag.
type Service struct {
	mu sync.RWMutex

	// Core components
	registry repository.Store

	// Configuration
	seed []model.Activity

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed replaces the built-in activity seed.
func WithSeed(seed []model.Activity) Option {
	return func(s *Service) {
		if len(seed) > 0 {
			s.seed = seed
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger: nil, // resolved when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the registry from the seed.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activities service...")

	s.registry = repository.NewRosterStore(ctx, repository.WithActivities(s.seed))

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", s.registry.Count(ctx)),
		logger.Int("participants", s.registry.ParticipantCount(ctx)),
	)

	return nil
}

// Stop shuts down the service. The registry is in-memory only, so there is
// nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "activities service stopped")
}

// store returns the registry, or ErrNotStarted before Start.
func (s *Service) store() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.registry, nil
}

// List returns a snapshot of every activity keyed by name.
func (s *Service) List(ctx context.Context) (map[string]model.Activity, error) {
	registry, err := s.store()
	if err != nil {
		return nil, err
	}
	return registry.List(ctx)
}

// Signup enrolls email into the named activity.
func (s *Service) Signup(ctx context.Context, name, email string) error {
	registry, err := s.store()
	if err != nil {
		return err
	}
	err = registry.Signup(ctx, name, email)
	switch {
	case err == nil:
		metrics.RecordSignup()
		s.logger.Info(ctx, "signed up student",
			logger.String("activity", name),
			logger.String("email", email),
		)
	case errors.Is(err, repository.ErrAlreadySignedUp):
		metrics.RecordSignupConflict()
	case errors.Is(err, repository.ErrActivityNotFound):
		metrics.RecordActivityNotFound()
	}
	return err
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, name, email string) error {
	registry, err := s.store()
	if err != nil {
		return err
	}
	err = registry.Unregister(ctx, name, email)
	switch {
	case err == nil:
		metrics.RecordUnregister()
		s.logger.Info(ctx, "unregistered student",
			logger.String("activity", name),
			logger.String("email", email),
		)
	case errors.Is(err, repository.ErrNotRegistered):
		metrics.RecordUnregisterConflict()
	case errors.Is(err, repository.ErrActivityNotFound):
		metrics.RecordActivityNotFound()
	}
	return err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		activities := s.registry.Count(ctx)
		participants := s.registry.ParticipantCount(ctx)

		stats["activities"] = activities
		stats["participants"] = participants
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())

		metrics.UpdateActivitiesTotal(activities)
		metrics.UpdateParticipantsTotal(participants)
	}

	return stats
}
