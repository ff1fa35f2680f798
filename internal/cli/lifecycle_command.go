package cli

import (
	"context"
	"fmt"
	"strings"

	"clockit/internal/domain"
	"clockit/internal/errors"
)

// LifecycleCommand moves one task through the state machine
type LifecycleCommand struct {
	app    *App
	verb   string
	past   string
	action func(ctx context.Context, label string) (*domain.Task, bool, error)
}

// NewStartCommand creates the start handler. Unknown labels are created first.
func NewStartCommand(app *App) *LifecycleCommand {
	return &LifecycleCommand{app: app, verb: "start", past: "started", action: app.service.Start}
}

// NewPauseCommand creates the pause handler
func NewPauseCommand(app *App) *LifecycleCommand {
	return &LifecycleCommand{app: app, verb: "pause", past: "paused", action: existing(app.service.Pause)}
}

// NewEndCommand creates the end handler
func NewEndCommand(app *App) *LifecycleCommand {
	return &LifecycleCommand{app: app, verb: "end", past: "ended", action: existing(app.service.End)}
}

// existing adapts a transition that never creates its task
func existing(fn func(context.Context, string) (*domain.Task, error)) func(context.Context, string) (*domain.Task, bool, error) {
	return func(ctx context.Context, label string) (*domain.Task, bool, error) {
		task, err := fn(ctx, label)
		return task, false, err
	}
}

// Execute runs the transition on the label formed by args
func (c *LifecycleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", c.verb, "usage: clockit "+c.verb+" <label>")
	}
	label := strings.Join(args, " ")

	task, created, err := c.action(ctx, label)
	if err != nil {
		return c.fail(label, err)
	}

	if created {
		c.app.printf("Task %s created\n", task.Label)
	}
	c.app.printf("%s %s\n", task.Label, c.past)
	return nil
}

// fail adds the command that gets the user past a refused transition or a missing task
func (c *LifecycleCommand) fail(label string, err error) error {
	handled := c.app.errorHandler.Handle(c.verb+" task", err)
	switch {
	case c.app.errorHandler.IsTransitionError(err):
		return fmt.Errorf("%w (use \"clockit set-state\" to override)", handled)
	case c.app.errorHandler.IsNotFoundError(err):
		return fmt.Errorf("%w (run \"clockit start %s\" to create it)", handled, label)
	}
	return handled
}
