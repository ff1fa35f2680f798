package cli

import (
	"context"
	"strings"

	"clockit/internal/errors"
)

// CreateCommand registers a task without starting it
type CreateCommand struct {
	app *App
}

// NewCreateCommand creates a new create command handler
func NewCreateCommand(app *App) *CreateCommand {
	return &CreateCommand{app: app}
}

// Execute runs the create command
func (c *CreateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "create", "usage: clockit create <label>")
	}
	label := strings.Join(args, " ")

	if _, err := c.app.service.Create(ctx, label); err != nil {
		return c.app.errorHandler.Handle("create task", err)
	}

	c.app.printf("Task %s created\n", label)
	return nil
}
