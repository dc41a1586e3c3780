package events

import "time"

// AttemptEvent is published after a role partition has been sanitized,
// ranked and matched. Reason explains why an invalid attempt was rejected.
type AttemptEvent struct {
	RunID     string
	Index     int
	Proposers []int
	Valid     bool
	Reason    string
	Duration  time.Duration
}
