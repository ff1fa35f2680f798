package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape; durations are written as Go duration strings
// and permissions as octal strings
type fileConfig struct {
	Database struct {
		Dir            string `yaml:"dir"`
		Filename       string `yaml:"filename"`
		URL            string `yaml:"url,omitempty"`
		BusyTimeout    string `yaml:"busy_timeout"`
		QueryTimeout   string `yaml:"query_timeout"`
		DirPermissions string `yaml:"dir_permissions"`
	} `yaml:"database"`
	Time struct {
		DisplayFormat string `yaml:"display_format"`
	} `yaml:"time"`
	Retention struct {
		Ended string `yaml:"ended"`
	} `yaml:"retention"`
	Validation struct {
		LabelMinLength int `yaml:"label_min_length"`
		LabelMaxLength int `yaml:"label_max_length"`
	} `yaml:"validation"`
	Application struct {
		Timeout string `yaml:"timeout"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"application"`
}

func toFileConfig(c *Config) fileConfig {
	var f fileConfig
	f.Database.Dir = c.Database.Dir
	f.Database.Filename = c.Database.Filename
	f.Database.URL = c.Database.URL
	f.Database.BusyTimeout = c.Database.BusyTimeout.String()
	f.Database.QueryTimeout = c.Database.QueryTimeout.String()
	f.Database.DirPermissions = fmt.Sprintf("%#o", c.Database.DirPermissions)
	f.Time.DisplayFormat = c.Time.DisplayFormat
	f.Retention.Ended = c.Retention.Ended.String()
	f.Validation.LabelMinLength = c.Validation.LabelMinLength
	f.Validation.LabelMaxLength = c.Validation.LabelMaxLength
	f.Application.Timeout = c.Application.Timeout.String()
	f.Application.Verbose = c.Application.Verbose
	return f
}

// Encode writes c as YAML that Loader reads back
func Encode(w io.Writer, c *Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(toFileConfig(c)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return encoder.Close()
}

// WriteFile writes c to path. An existing file is kept unless force is set.
func WriteFile(path string, c *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return &ConfigError{Field: "config", Message: fmt.Sprintf("%s already exists", path)}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	return Encode(file, c)
}
