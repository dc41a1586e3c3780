package matching

import "fmt"

// hardParticipantLimit keeps C(N, N/2) within int64.
const hardParticipantLimit = 64

// Config defines matching engine settings.
type Config struct {
	// Workers is the number of partitions evaluated concurrently. Values
	// below two run the search sequentially.
	Workers int `json:"workers"`
	// MaxAttempts caps the number of partitions evaluated. Zero means no cap.
	MaxAttempts int `json:"max_attempts"`
	// MaxParticipants rejects populations whose search space is too large.
	MaxParticipants int `json:"max_participants"`
	// AllowZeroScores accepts matched pairs whose score is a genuine zero.
	// Forbidden pairs are always rejected.
	AllowZeroScores bool `json:"allow_zero_scores"`
	// VerifyStability re-checks every accepted matching for blocking pairs.
	VerifyStability bool `json:"verify_stability"`
	// Rules maps preference categories to accepted gender identities. An
	// empty table selects the Men/Women/Bisexual defaults.
	Rules map[string][]string `json:"rules"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.MaxParticipants == 0 {
		c.MaxParticipants = 40
	}
}

// Validate checks the configured limits.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must not be negative, got %d", c.MaxAttempts)
	}
	if c.MaxParticipants < 0 || c.MaxParticipants > hardParticipantLimit {
		return fmt.Errorf("max_participants must be within [0, %d], got %d", hardParticipantLimit, c.MaxParticipants)
	}
	for pref, genders := range c.Rules {
		if len(genders) == 0 {
			return fmt.Errorf("rule %q accepts no gender", pref)
		}
	}
	return nil
}
