package smoketest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mergington/activities/pkg/logger"
)

// Run executes the signup round-trip against a live server. It fails fast:
// the first step that deviates from the contract aborts the run.
func Run(ctx context.Context, config *Config) error {
	log := logger.Named("smoketest")
	stats := &Stats{StartTime: time.Now()}
	defer func() {
		stats.Duration = time.Since(stats.StartTime)
		log.Info(ctx, "smoke test finished",
			logger.Int("stepsRun", stats.StepsRun),
			logger.Int("stepsPassed", stats.StepsPassed),
			logger.String("duration", stats.Duration.String()),
		)
	}()

	c := newClient(config.BaseURL, config.Timeout)

	email := config.Email
	if email == "" {
		email = fmt.Sprintf("smoke-%s@mergington.edu", uuid.NewString())
	}

	step := func(name string, fn func() error) error {
		stats.StepsRun++
		if err := fn(); err != nil {
			return fmt.Errorf("step %q: %w", name, err)
		}
		stats.StepsPassed++
		if config.Verbose {
			log.Info(ctx, "step passed", logger.String("step", name))
		}
		return nil
	}

	if err := step("list contains activity", func() error {
		activities, err := c.listActivities(ctx)
		if err != nil {
			return err
		}
		a, ok := activities[config.Activity]
		if !ok {
			return fmt.Errorf("activity %q missing from listing", config.Activity)
		}
		if a.Description == "" || a.Schedule == "" || a.MaxParticipants == 0 {
			return fmt.Errorf("activity %q is missing required fields", config.Activity)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := step("signup succeeds", func() error {
		status, msg, err := c.signup(ctx, config.Activity, email)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("expected 200, got %d (%s)", status, msg)
		}
		if !strings.Contains(msg, "Signed up") {
			return fmt.Errorf("unexpected message %q", msg)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := step("participant listed once", func() error {
		activities, err := c.listActivities(ctx)
		if err != nil {
			return err
		}
		occurrences := 0
		for _, p := range activities[config.Activity].Participants {
			if p == email {
				occurrences++
			}
		}
		if occurrences != 1 {
			return fmt.Errorf("expected 1 occurrence of %s, found %d", email, occurrences)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := step("duplicate signup conflicts", func() error {
		status, detail, err := c.signup(ctx, config.Activity, email)
		if err != nil {
			return err
		}
		if status != http.StatusBadRequest {
			return fmt.Errorf("expected 400, got %d", status)
		}
		if !strings.Contains(detail, "already signed up") {
			return fmt.Errorf("unexpected detail %q", detail)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := step("unregister succeeds", func() error {
		status, msg, err := c.unregister(ctx, config.Activity, email)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("expected 200, got %d (%s)", status, msg)
		}
		if !strings.Contains(msg, "Unregistered") {
			return fmt.Errorf("unexpected message %q", msg)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := step("participant gone", func() error {
		activities, err := c.listActivities(ctx)
		if err != nil {
			return err
		}
		for _, p := range activities[config.Activity].Participants {
			if p == email {
				return fmt.Errorf("%s still listed after unregister", email)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	return step("absent unregister conflicts", func() error {
		status, detail, err := c.unregister(ctx, config.Activity, email)
		if err != nil {
			return err
		}
		if status != http.StatusBadRequest {
			return fmt.Errorf("expected 400, got %d", status)
		}
		if !strings.Contains(detail, "not registered") {
			return fmt.Errorf("unexpected detail %q", detail)
		}
		return nil
	})
}
