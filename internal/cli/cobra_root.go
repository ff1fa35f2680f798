package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"clockit/internal/config"
	"clockit/internal/domain"
	"clockit/internal/logging"
	"clockit/internal/services"
	"clockit/internal/validation"

	"github.com/spf13/cobra"
)

// ServiceFactory opens the task service for one invocation.
// The returned closer releases the storage handle.
type ServiceFactory func(cfg *config.Config) (services.TaskService, io.Closer, error)

// DefaultServiceFactory opens the configured SQLite database
func DefaultServiceFactory(cfg *config.Config) (services.TaskService, io.Closer, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}
	validator := validation.NewLabelValidator(cfg.Validation.LabelMinLength, cfg.Validation.LabelMaxLength)
	return services.NewTaskService(repo, validator), repo, nil
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	factory    ServiceFactory
	config     *config.Config
	configFile string
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(factory ServiceFactory) *RootCommand {
	if factory == nil {
		factory = DefaultServiceFactory
	}
	root := &RootCommand{factory: factory}

	root.cmd = &cobra.Command{
		Use:   "clockit",
		Short: "Track the time spent on named tasks",
		Long: `clockit records how long you work on named tasks.

A task is created, then started, paused and started again as often as needed,
and finally ended. Only time spent started is counted.

EXAMPLES:
  clockit start report          # Create "report" if needed and start it
  clockit pause report          # Pause it, keeping the time spent so far
  clockit end report            # End it for good
  clockit show                  # Table of every task
  clockit running               # Tasks currently started
  clockit clean --retention 72h # Delete tasks ended more than 3 days ago

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults
  Config file: $XDG_CONFIG_HOME/clockit/config.yaml (create it with "clockit config init")

  DATABASE_URL                  Full database path (overrides directory and filename)
  CLOCKIT_DB_DIR                Database directory (default: ~/.clockit)
  CLOCKIT_DB_FILENAME           Database filename (default: clockit.db)
  CLOCKIT_DB_BUSY_TIMEOUT       Wait for a locked database (default: 5s)
  CLOCKIT_DB_QUERY_TIMEOUT      Query timeout (default: 10s)
  CLOCKIT_TIME_DISPLAY_FORMAT   Time format (default: 2006-01-02 15:04:05)
  CLOCKIT_RETENTION             Keep ended tasks this long on clean (default: 0s)
  CLOCKIT_APP_TIMEOUT           Application timeout (default: 30s)
  CLOCKIT_APP_VERBOSE           Enable debug output (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the cobra command for argument and output wiring
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with a parent context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (default: $XDG_CONFIG_HOME/clockit/config.yaml)")

	flags.String("db-dir", "", "Database directory (overrides CLOCKIT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides CLOCKIT_DB_FILENAME)")
	flags.String("db-url", "", "Full database path (overrides DATABASE_URL)")
	flags.Duration("db-busy-timeout", 0, "Wait for a locked database (overrides CLOCKIT_DB_BUSY_TIMEOUT)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides CLOCKIT_DB_QUERY_TIMEOUT)")

	flags.String("time-format", "", "Time display format (overrides CLOCKIT_TIME_DISPLAY_FORMAT)")

	flags.Duration("app-timeout", 0, "Application timeout (overrides CLOCKIT_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug output (overrides CLOCKIT_APP_VERBOSE)")
}

// handler is the shape shared by the task command handlers
type handler interface {
	Execute(ctx context.Context, args []string) error
}

// taskCommand builds a subcommand whose handler needs the task service
func (r *RootCommand) taskCommand(cmd *cobra.Command, newHandler func(*App) handler) *cobra.Command {
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return r.withApp(cmd, func(ctx context.Context, app *App) error {
			return newHandler(app).Execute(ctx, args)
		})
	}
	return cmd
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	startCmd := r.taskCommand(&cobra.Command{
		Use:   "start <label>",
		Short: "Start a task, creating it when needed",
		Long:  "Start tracking time for a task. A paused task resumes; an unknown label is created first.",
		Args:  cobra.MinimumNArgs(1),
	}, func(app *App) handler { return NewStartCommand(app) })

	pauseCmd := r.taskCommand(&cobra.Command{
		Use:   "pause <label>",
		Short: "Pause a started task",
		Args:  cobra.MinimumNArgs(1),
	}, func(app *App) handler { return NewPauseCommand(app) })

	endCmd := r.taskCommand(&cobra.Command{
		Use:   "end <label>",
		Short: "End a started or paused task",
		Args:  cobra.MinimumNArgs(1),
	}, func(app *App) handler { return NewEndCommand(app) })

	createCmd := r.taskCommand(&cobra.Command{
		Use:   "create <label>",
		Short: "Create a task without starting it",
		Args:  cobra.MinimumNArgs(1),
	}, func(app *App) handler { return NewCreateCommand(app) })

	showCmd := r.taskCommand(&cobra.Command{
		Use:   "show [label]",
		Short: "Show one task or a table of all tasks",
	}, func(app *App) handler { return NewShowCommand(app) })

	runningCmd := r.taskCommand(&cobra.Command{
		Use:   "running",
		Short: "Show started tasks",
		Args:  cobra.NoArgs,
	}, func(app *App) handler { return NewRunningCommand(app) })

	existsCmd := r.taskCommand(&cobra.Command{
		Use:   "exists <label>",
		Short: "Print whether a task exists",
		Args:  cobra.MinimumNArgs(1),
	}, func(app *App) handler { return NewExistsCommand(app) })

	renameCmd := r.taskCommand(&cobra.Command{
		Use:   "rename <label> <new label>",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(2),
	}, func(app *App) handler { return NewRenameCommand(app) })

	setStateCmd := r.taskCommand(&cobra.Command{
		Use:   "set-state <label> <state>",
		Short: "Overwrite a task's state",
		Long: "Overwrite a task's state without checking the lifecycle rules.\n\n" +
			"States: " + stateCodeHelp() + ". Timestamps and elapsed time are left untouched.",
		Args: cobra.ExactArgs(2),
	}, func(app *App) handler { return NewSetStateCommand(app) })

	deleteCmd := r.taskCommand(&cobra.Command{
		Use:   "delete <label>",
		Short: "Delete a task",
		Long:  "Delete a task. This operation cannot be undone.",
		Args:  cobra.MinimumNArgs(1),
	}, func(app *App) handler { return NewDeleteCommand(app) })

	cleanCmd := r.taskCommand(&cobra.Command{
		Use:   "clean",
		Short: "Delete ended tasks older than the retention period",
		Long: `Delete every ended task whose end time is further in the past than the retention period.

With the default retention of 0s every ended task is deleted.`,
		Args: cobra.NoArgs,
	}, func(app *App) handler { return NewCleanCommand(app) })
	cleanCmd.Flags().Duration("retention", 0, "Keep tasks ended within this period (overrides CLOCKIT_RETENTION)")

	r.cmd.AddCommand(
		startCmd,
		pauseCmd,
		endCmd,
		createCmd,
		showCmd,
		runningCmd,
		existsCmd,
		renameCmd,
		setStateCmd,
		deleteCmd,
		cleanCmd,
		r.configCommand(),
	)
}

func (r *RootCommand) configCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return NewConfigInitCommand(r.configFile, force, cmd.OutOrStdout()).Execute()
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	initCmd.Annotations = map[string]string{skipConfigLoad: "true"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewConfigShowCommand(r.config, cmd.OutOrStdout()).Execute()
		},
	}

	configCmd.AddCommand(initCmd, showCmd)
	return configCmd
}

// withApp opens the service, bounds the call by the application timeout and closes the storage afterwards
func (r *RootCommand) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	service, closer, err := r.factory(r.config)
	if err != nil {
		return NewErrorHandler().Handle("open database", err)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	return fn(ctx, NewApp(service, r.config, cmd.OutOrStdout()))
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// skipConfigLoad marks commands that must run before a config file exists
const skipConfigLoad = "skip-config-load"

// loadConfig builds the configuration from file, environment and the flags set on cmd
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader = config.NewLoaderWithFile(path)
	}
	r.configFile = loader.ConfigFile()
	if cmd.Annotations[skipConfigLoad] == "true" {
		return nil
	}

	cfg, err := loader.LoadWithOverrides(overridesFromFlags(cmd))
	if err != nil {
		return NewErrorHandler().Handle("load configuration", err)
	}
	r.config = cfg

	if cfg.Application.Verbose {
		logging.SetEnabled(true)
	}
	logging.Debugf("database: %s\n", cfg.GetDatabasePath())
	return nil
}

// overridesFromFlags collects the flags explicitly set on the command line
func overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	return &config.ConfigOverrides{
		DBDir:          stringFlag(cmd, "db-dir"),
		DBFilename:     stringFlag(cmd, "db-filename"),
		DBURL:          stringFlag(cmd, "db-url"),
		DBBusyTimeout:  durationFlag(cmd, "db-busy-timeout"),
		DBQueryTimeout: durationFlag(cmd, "db-query-timeout"),
		TimeFormat:     stringFlag(cmd, "time-format"),
		Retention:      durationFlag(cmd, "retention"),
		Timeout:        durationFlag(cmd, "app-timeout"),
		Verbose:        boolFlag(cmd, "verbose"),
	}
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &value
}

func durationFlag(cmd *cobra.Command, name string) *time.Duration {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetDuration(name)
	if err != nil {
		return nil
	}
	return &value
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &value
}

// stateCodeHelp lists the codes set-state accepts, e.g. "create (c), start (s)"
func stateCodeHelp() string {
	codes := make([]string, 0, len(domain.States))
	for _, state := range domain.States {
		codes = append(codes, fmt.Sprintf("%s (%c)", state.Order(), unicode.ToLower(state.Char())))
	}
	return strings.Join(codes, ", ")
}
