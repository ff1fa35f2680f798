package cli

import (
	"fmt"
	"io"
	"time"

	"clockit/internal/config"
	"clockit/internal/domain"
	"clockit/internal/services"
)

// App carries what every command handler needs for one invocation
type App struct {
	service      services.TaskService
	config       *config.Config
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(service services.TaskService, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		service:      service,
		config:       cfg,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) timeLayout() string {
	return a.config.Time.DisplayFormat
}

// displayLine renders the task's display line in its state style
func (a *App) displayLine(task domain.Task, now time.Time) string {
	return StyleFor(task.State).Render(task.Display(now, a.timeLayout()))
}
