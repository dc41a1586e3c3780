package config

import (
	"fmt"

	runlog "github.com/inakineitor/algo-comp-2023/core/matching/logging"
	"github.com/inakineitor/algo-comp-2023/infra/logger"
)

// LoggingConfig defines the application log level and the run log store.
type LoggingConfig struct {
	// Level is the minimum application log level.
	Level string `json:"level"`
	// Format is "console" or "json". Empty follows APP_ENV.
	Format string `json:"format"`
	// Backend selects the run log store: "jsonl", "rotating", "sqlite" or
	// "none" to disable persistence.
	Backend string `json:"backend"`
	// Path is the file location of the run log.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Backend == "none" {
		return
	}
	rl := c.RunLog()
	rl.SetDefaults()
	c.Backend, c.Path, c.MaxSizeMB = rl.Backend, rl.Path, rl.MaxSizeMB
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	if err := c.Logger().Validate(); err != nil {
		return err
	}
	if !c.RunLogEnabled() {
		return nil
	}
	if err := c.RunLog().Validate(); err != nil {
		return fmt.Errorf("run log: %w", err)
	}
	return nil
}

// Logger returns the application logger settings.
func (c LoggingConfig) Logger() logger.Config {
	return logger.Config{Level: c.Level, Format: c.Format}
}

// RunLog returns the run log store settings.
func (c LoggingConfig) RunLog() runlog.Config {
	return runlog.Config{
		Backend:    c.Backend,
		Path:       c.Path,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}

// RunLogEnabled reports whether runs are persisted.
func (c LoggingConfig) RunLogEnabled() bool { return c.Backend != "none" }
