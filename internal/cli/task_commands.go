package cli

import (
	"context"
	"strings"

	"clockit/internal/errors"
)

// ExistsCommand prints whether a label is stored
type ExistsCommand struct {
	app *App
}

// NewExistsCommand creates a new exists command handler
func NewExistsCommand(app *App) *ExistsCommand {
	return &ExistsCommand{app: app}
}

// Execute runs the exists command
func (c *ExistsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "exists", "usage: clockit exists <label>")
	}

	exists, err := c.app.service.Exists(ctx, strings.Join(args, " "))
	if err != nil {
		return c.app.errorHandler.Handle("check task", err)
	}
	c.app.printf("%t\n", exists)
	return nil
}

// RenameCommand changes a task's label
type RenameCommand struct {
	app *App
}

// NewRenameCommand creates a new rename command handler
func NewRenameCommand(app *App) *RenameCommand {
	return &RenameCommand{app: app}
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "rename", "usage: clockit rename <label> <new label>")
	}

	if err := c.app.service.Rename(ctx, args[0], args[1]); err != nil {
		return c.app.errorHandler.Handle("rename task", err)
	}
	c.app.printf("%s renamed to %s\n", args[0], args[1])
	return nil
}

// SetStateCommand overwrites a task's state without running the state machine
type SetStateCommand struct {
	app *App
}

// NewSetStateCommand creates a new set-state command handler
func NewSetStateCommand(app *App) *SetStateCommand {
	return &SetStateCommand{app: app}
}

// Execute runs the set-state command
func (c *SetStateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "set-state", "usage: clockit set-state <label> <c|s|p|e>")
	}

	if err := c.app.service.SetState(ctx, args[0], args[1]); err != nil {
		return c.app.errorHandler.Handle("set state", err)
	}

	task, err := c.app.service.Find(ctx, args[0])
	if err != nil {
		return c.app.errorHandler.Handle("set state", err)
	}
	c.app.printf("%s is now %s\n", task.Label, task.State)
	return nil
}

// DeleteCommand removes a task
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: clockit delete <label>")
	}
	label := strings.Join(args, " ")

	if err := c.app.service.Delete(ctx, label); err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}
	c.app.printf("%s deleted\n", label)
	return nil
}

// CleanCommand deletes ended tasks past the retention period
type CleanCommand struct {
	app *App
}

// NewCleanCommand creates a new clean command handler
func NewCleanCommand(app *App) *CleanCommand {
	return &CleanCommand{app: app}
}

// Execute runs the clean command with the configured retention
func (c *CleanCommand) Execute(ctx context.Context, args []string) error {
	count, err := c.app.service.CleanExpired(ctx, c.app.config.Retention.Ended)
	if err != nil {
		return c.app.errorHandler.Handle("clean tasks", err)
	}
	c.app.printf("%d tasks deleted\n", count)
	return nil
}
