package cli

import (
	"io"

	"clockit/internal/config"
)

// ConfigInitCommand writes the default configuration file
type ConfigInitCommand struct {
	path  string
	force bool
	out   io.Writer
}

// NewConfigInitCommand creates a handler writing to path
func NewConfigInitCommand(path string, force bool, out io.Writer) *ConfigInitCommand {
	return &ConfigInitCommand{path: path, force: force, out: out}
}

// Execute runs the config init command
func (c *ConfigInitCommand) Execute() error {
	if err := config.WriteFile(c.path, config.NewConfig(), c.force); err != nil {
		return NewErrorHandler().Handle("write config", err)
	}
	_, err := io.WriteString(c.out, "Config written to "+c.path+"\n")
	return err
}

// ConfigShowCommand prints the effective configuration
type ConfigShowCommand struct {
	config *config.Config
	out    io.Writer
}

// NewConfigShowCommand creates a new config show handler
func NewConfigShowCommand(cfg *config.Config, out io.Writer) *ConfigShowCommand {
	return &ConfigShowCommand{config: cfg, out: out}
}

// Execute runs the config show command
func (c *ConfigShowCommand) Execute() error {
	return config.Encode(c.out, c.config)
}
