// Package smoketest exercises a running activities server end to end:
// list, signup, duplicate signup, unregister, and absent unregister.
package smoketest

import "time"

// Config holds configuration for the smoke test.
type Config struct {
	BaseURL  string        // Base URL of the service
	Activity string        // Activity to sign up for
	Email    string        // Email to use; generated when empty
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Enable verbose logging
}

// Activity mirrors the listing response shape.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse represents a success response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// DetailResponse represents an error response body.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Stats holds smoke test statistics.
type Stats struct {
	StepsRun    int
	StepsPassed int
	StartTime   time.Time
	Duration    time.Duration
}
