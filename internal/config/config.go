package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for clockit
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Time        TimeConfig        `mapstructure:"time"`
	Retention   RetentionConfig   `mapstructure:"retention"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Application ApplicationConfig `mapstructure:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir      string `mapstructure:"dir"`
	Filename string `mapstructure:"filename"`
	// URL is a full database path; when set it replaces Dir and Filename
	URL            string        `mapstructure:"url"`
	BusyTimeout    time.Duration `mapstructure:"busy_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	DirPermissions uint32        `mapstructure:"dir_permissions"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `mapstructure:"display_format"`
}

// RetentionConfig controls how long ended tasks survive a clean
type RetentionConfig struct {
	Ended time.Duration `mapstructure:"ended"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	LabelMinLength int `mapstructure:"label_min_length"`
	LabelMaxLength int `mapstructure:"label_max_length"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Verbose bool          `mapstructure:"verbose"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".clockit"),
			Filename:       "clockit.db",
			BusyTimeout:    5 * time.Second,
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			DisplayFormat: "2006-01-02 15:04:05",
		},
		Retention: RetentionConfig{
			Ended: 0,
		},
		Validation: ValidationConfig{
			LabelMinLength: 1,
			LabelMaxLength: 255,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	}
	if c.Database.BusyTimeout < 0 {
		return &ConfigError{Field: "database.busy_timeout", Message: "busy timeout cannot be negative"}
	}
	if c.Database.QueryTimeout < 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout cannot be negative"}
	}

	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}

	if c.Retention.Ended < 0 {
		return &ConfigError{Field: "retention.ended", Message: "retention cannot be negative"}
	}

	if c.Validation.LabelMinLength < 1 {
		return &ConfigError{Field: "validation.label_min_length", Message: "label minimum length must be at least 1"}
	}
	if c.Validation.LabelMaxLength < c.Validation.LabelMinLength {
		return &ConfigError{Field: "validation.label_max_length", Message: "label maximum length must not be less than minimum length"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
