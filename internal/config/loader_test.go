package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every source the loader reads at empty test locations
func isolate(t *testing.T) string {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	for _, names := range envBindings {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
	return configHome
}

func writeConfigFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoader_DefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoader_DefaultConfigPath(t *testing.T) {
	configHome := isolate(t)

	assert.Equal(t, filepath.Join(configHome, "clockit", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, DefaultConfigPath(), NewLoader().ConfigFile())
}

func TestLoader_ReadsConfigFile(t *testing.T) {
	configHome := isolate(t)
	writeConfigFile(t, filepath.Join(configHome, "clockit", "config.yaml"), `
database:
  dir: /var/lib/clockit
  busy_timeout: 250ms
time:
  display_format: "02/01 15:04"
retention:
  ended: 72h
validation:
  label_max_length: 40
`)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/clockit", cfg.Database.Dir)
	assert.Equal(t, "clockit.db", cfg.Database.Filename)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.BusyTimeout)
	assert.Equal(t, "02/01 15:04", cfg.Time.DisplayFormat)
	assert.Equal(t, 72*time.Hour, cfg.Retention.Ended)
	assert.Equal(t, 40, cfg.Validation.LabelMaxLength)
}

func TestLoader_EnvironmentOverridesFile(t *testing.T) {
	configHome := isolate(t)
	writeConfigFile(t, filepath.Join(configHome, "clockit", "config.yaml"), `
database:
  filename: from-file.db
application:
  verbose: false
`)
	t.Setenv("CLOCKIT_DB_FILENAME", "from-env.db")
	t.Setenv("CLOCKIT_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("CLOCKIT_RETENTION", "1h")
	t.Setenv("CLOCKIT_APP_VERBOSE", "true")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Database.Filename)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, time.Hour, cfg.Retention.Ended)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoader_DatabaseURLWins(t *testing.T) {
	isolate(t)
	t.Setenv("CLOCKIT_DB_URL", "/from/clockit.db")
	t.Setenv("DATABASE_URL", "/from/database_url.db")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "/from/database_url.db", cfg.GetDatabasePath())
}

func TestLoader_InvalidEnvironmentFailsValidation(t *testing.T) {
	isolate(t)
	t.Setenv("CLOCKIT_TIME_DISPLAY_FORMAT", "")
	t.Setenv("CLOCKIT_VALIDATION_LABEL_MIN", "0")

	_, err := NewLoader().Load()

	configErr, ok := err.(*ConfigError)
	require.True(t, ok, "expected *ConfigError, got %T", err)
	assert.Equal(t, "validation.label_min_length", configErr.Field)
}

func TestLoader_ExplicitFileMustExist(t *testing.T) {
	isolate(t)

	_, err := NewLoaderWithFile(filepath.Join(t.TempDir(), "missing.yaml")).Load()

	assert.Error(t, err)
}

func TestLoader_MalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	writeConfigFile(t, path, "database: [unclosed\n")

	_, err := NewLoaderWithFile(path).Load()

	assert.Error(t, err)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CLOCKIT_DB_DIR", "/from/env")

	dir := "/from/flag"
	url := "/flag/url.db"
	format := "15:04"
	retention := 48 * time.Hour
	verbose := true
	timeout := time.Minute

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		DBDir:      &dir,
		DBURL:      &url,
		TimeFormat: &format,
		Retention:  &retention,
		Verbose:    &verbose,
		Timeout:    &timeout,
	})

	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.Database.Dir)
	assert.Equal(t, "/flag/url.db", cfg.GetDatabasePath())
	assert.Equal(t, "15:04", cfg.Time.DisplayFormat)
	assert.Equal(t, 48*time.Hour, cfg.Retention.Ended)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, time.Minute, cfg.Application.Timeout)
}

func TestLoader_OverridesAreValidated(t *testing.T) {
	isolate(t)
	negative := -time.Hour

	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Retention: &negative})

	assert.Error(t, err)
}
