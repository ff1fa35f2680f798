package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clockit/internal/logging"

	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that set them.
// Earlier names win when several are set.
var envBindings = map[string][]string{
	"database.dir":                {"CLOCKIT_DB_DIR"},
	"database.filename":           {"CLOCKIT_DB_FILENAME"},
	"database.url":                {"DATABASE_URL", "CLOCKIT_DB_URL"},
	"database.busy_timeout":       {"CLOCKIT_DB_BUSY_TIMEOUT"},
	"database.query_timeout":      {"CLOCKIT_DB_QUERY_TIMEOUT"},
	"database.dir_permissions":    {"CLOCKIT_DB_DIR_PERMISSIONS"},
	"time.display_format":         {"CLOCKIT_TIME_DISPLAY_FORMAT"},
	"retention.ended":             {"CLOCKIT_RETENTION"},
	"validation.label_min_length": {"CLOCKIT_VALIDATION_LABEL_MIN"},
	"validation.label_max_length": {"CLOCKIT_VALIDATION_LABEL_MAX"},
	"application.timeout":         {"CLOCKIT_APP_TIMEOUT"},
	"application.verbose":         {"CLOCKIT_APP_VERBOSE"},
}

// Loader handles loading configuration from multiple sources
type Loader struct {
	configFile string
	explicit   bool
}

// NewLoader creates a loader reading the default config file when it exists
func NewLoader() *Loader {
	return &Loader{configFile: DefaultConfigPath()}
}

// NewLoaderWithFile creates a loader for a config file that must exist
func NewLoaderWithFile(path string) *Loader {
	return &Loader{configFile: path, explicit: true}
}

// ConfigFile returns the path the loader reads
func (l *Loader) ConfigFile() string {
	return l.configFile
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	v := viper.New()
	setDefaults(v, NewConfig())

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind environment for %s: %w", key, err)
		}
	}

	if err := l.readFile(v); err != nil {
		return nil, err
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, &ConfigError{Field: "config", Message: err.Error()}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) readFile(v *viper.Viper) error {
	if l.configFile == "" {
		return nil
	}
	if _, err := os.Stat(l.configFile); err != nil {
		if os.IsNotExist(err) && !l.explicit {
			return nil
		}
		return &ConfigError{Field: "config", Message: err.Error()}
	}

	v.SetConfigFile(l.configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return &ConfigError{Field: "config", Message: fmt.Sprintf("read %s: %v", l.configFile, err)}
	}
	logging.Debugf("loaded config file %s\n", l.configFile)
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	DBDir          *string
	DBFilename     *string
	DBURL          *string
	DBBusyTimeout  *time.Duration
	DBQueryTimeout *time.Duration

	TimeFormat *string

	Retention *time.Duration

	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBURL != nil {
		config.Database.URL = *overrides.DBURL
	}
	if overrides.DBBusyTimeout != nil {
		config.Database.BusyTimeout = *overrides.DBBusyTimeout
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}

	if overrides.TimeFormat != nil {
		config.Time.DisplayFormat = *overrides.TimeFormat
	}

	if overrides.Retention != nil {
		config.Retention.Ended = *overrides.Retention
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("database.dir", c.Database.Dir)
	v.SetDefault("database.filename", c.Database.Filename)
	v.SetDefault("database.url", c.Database.URL)
	v.SetDefault("database.busy_timeout", c.Database.BusyTimeout)
	v.SetDefault("database.query_timeout", c.Database.QueryTimeout)
	v.SetDefault("database.dir_permissions", c.Database.DirPermissions)
	v.SetDefault("time.display_format", c.Time.DisplayFormat)
	v.SetDefault("retention.ended", c.Retention.Ended)
	v.SetDefault("validation.label_min_length", c.Validation.LabelMinLength)
	v.SetDefault("validation.label_max_length", c.Validation.LabelMaxLength)
	v.SetDefault("application.timeout", c.Application.Timeout)
	v.SetDefault("application.verbose", c.Application.Verbose)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/clockit/config.yaml, falling back to ~/.config
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "clockit", "config.yaml")
}
