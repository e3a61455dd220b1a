// Package config resolves task-cli settings from defaults, a TOML config
// file, the environment and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tiwariParth/task-cli/internal/logging"
	"github.com/tiwariParth/task-cli/internal/storage/file"
)

// Default values.
const (
	DefaultFile        = file.DefaultPath
	DefaultLockTimeout = 5 * time.Second
	DefaultLogLevel    = "warn"
)

// ErrInvalidConfig marks configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration is a time.Duration written as a string such as "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config holds the resolved settings.
type Config struct {
	File        string   `toml:"file"`
	Format      string   `toml:"format"`
	Lock        bool     `toml:"lock"`
	LockTimeout Duration `toml:"lock_timeout"`
	LogLevel    string   `toml:"log_level"`
	NoColor     bool     `toml:"no_color"`

	// Source is the config file that was read, if any.
	Source string `toml:"-"`
}

// Overrides carries flag values. Nil fields were not set on the command
// line and leave the lower layers alone.
type Overrides struct {
	File     *string
	Format   *string
	Lock     *bool
	NoColor  *bool
	LogLevel *string
}

func setDefaults(cfg *Config) {
	cfg.File = DefaultFile
	cfg.LockTimeout = Duration{DefaultLockTimeout}
	cfg.LogLevel = DefaultLogLevel
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.File != nil {
		cfg.File = *o.File
	}
	if o.Format != nil {
		cfg.Format = *o.Format
	}
	if o.Lock != nil {
		cfg.Lock = *o.Lock
	}
	if o.NoColor != nil {
		cfg.NoColor = *o.NoColor
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
}

// Validate checks values that cannot be checked while decoding.
func (c *Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("%w: file must not be empty", ErrInvalidConfig)
	}
	if _, err := file.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.LockTimeout.Duration < 0 {
		return fmt.Errorf("%w: lock_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// StoreFormat returns the configured document format; empty means infer
// from the file extension.
func (c *Config) StoreFormat() file.Format {
	f, _ := file.ParseFormat(c.Format)
	return f
}

// Level returns the configured log level.
func (c *Config) Level() log.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
