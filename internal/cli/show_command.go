package cli

import (
	"context"
	"strings"
	"time"

	"clockit/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

// ShowCommand prints one task or a table of every task
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute prints the task named by args, or all tasks when args is empty
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	now := c.app.service.Now()

	if len(args) > 0 {
		task, err := c.app.service.Find(ctx, strings.Join(args, " "))
		if err != nil {
			return c.app.errorHandler.Handle("show task", err)
		}
		c.app.printf("%s\n", c.app.displayLine(*task, now))
		return nil
	}

	tasks, err := c.app.service.ListAll(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}
	if len(tasks) == 0 {
		c.app.printf("No task being registered\n")
		return nil
	}

	c.app.printf("%s\n", renderTaskTable(tasks, now, c.app.timeLayout()))
	return nil
}

// RunningCommand prints every started task
type RunningCommand struct {
	app *App
}

// NewRunningCommand creates a new running command handler
func NewRunningCommand(app *App) *RunningCommand {
	return &RunningCommand{app: app}
}

// Execute runs the running command
func (c *RunningCommand) Execute(ctx context.Context, args []string) error {
	tasks, err := c.app.service.FindByState(ctx, domain.StateStarted.SQLCode())
	if err != nil {
		return c.app.errorHandler.Handle("list running tasks", err)
	}
	if len(tasks) == 0 {
		c.app.printf("No task currently running\n")
		return nil
	}

	now := c.app.service.Now()
	for _, task := range tasks {
		c.app.printf("%s\n", c.app.displayLine(task, now))
	}
	return nil
}

var taskTableHeaders = []string{"Task", "Elapsed time", "State", "Started on", "Ended on", "Created"}

// renderTaskTable lays tasks out one per row, each row in its state style
func renderTaskTable(tasks []domain.Task, now time.Time, layout string) string {
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		endedOn := ""
		if task.State == domain.StateEnded {
			endedOn = task.EndDt.Local().Format(layout)
		}
		rows = append(rows, []string{
			task.Label,
			task.ReadableElapsedTime(now),
			task.State.SQLCode(),
			task.BeginDt.Local().Format(layout),
			endedOn,
			humanize.RelTime(task.CreatedOn, now, "ago", "from now"),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(taskTableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= len(tasks) {
				return headerStyle
			}
			return cellStyle.Inherit(StyleFor(tasks[row].State))
		})

	return t.String()
}
