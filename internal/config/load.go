package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables read by Load.
const (
	EnvConfig      = "TASK_CLI_CONFIG"
	EnvFile        = "TASK_CLI_FILE"
	EnvFormat      = "TASK_CLI_FORMAT"
	EnvLock        = "TASK_CLI_LOCK"
	EnvLockTimeout = "TASK_CLI_LOCK_TIMEOUT"
	EnvLogLevel    = "TASK_CLI_LOG_LEVEL"
	EnvNoColor     = "NO_COLOR"
)

// ProjectConfigFile is looked up in the working directory.
const ProjectConfigFile = ".task-cli.toml"

// Load resolves configuration from multiple sources in priority order:
// 1. Defaults
// 2. Config file ($TASK_CLI_CONFIG, ./.task-cli.toml or the user config dir)
// 3. Environment variables
// 4. Flags in o
func Load(o Overrides) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	path, err := findConfigFile()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("%w: config file %s: %v", ErrInvalidConfig, path, err)
		}
		cfg.Source = path
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	applyOverrides(cfg, o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first config file that exists. An explicit
// $TASK_CLI_CONFIG must exist.
func findConfigFile() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%w: %s=%s: %v", ErrInvalidConfig, EnvConfig, p, err)
		}
		return p, nil
	}

	if fileExists(ProjectConfigFile) {
		return ProjectConfigFile, nil
	}

	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "task-cli", "config.toml")
		if fileExists(p) {
			return p, nil
		}
	}
	return "", nil
}

// loadConfigFile decodes TOML from path over cfg. Unknown keys are errors
// so typos do not pass silently.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv(EnvFile); v != "" {
		cfg.File = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvLock); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvLock, v)
		}
		cfg.Lock = b
	}
	if v := os.Getenv(EnvLockTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, EnvLockTimeout, v)
		}
		cfg.LockTimeout = Duration{d}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv(EnvNoColor) != "" {
		cfg.NoColor = true
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
