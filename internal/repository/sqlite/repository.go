package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clockit/internal/errors"
	"clockit/internal/logging"
	"clockit/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations on the tasks table
type Repository interface {
	// Create operations
	CreateTask(ctx context.Context, task *Task) (int64, error)

	// Read operations
	GetTask(ctx context.Context, label string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	ListTasksByState(ctx context.Context, state string) ([]*Task, error)
	TaskExists(ctx context.Context, label string) (bool, error)

	// Update operations
	UpdateTask(ctx context.Context, task *Task) error
	UpdateTaskState(ctx context.Context, label string, state string) error
	UpdateTaskLabel(ctx context.Context, label string, newLabel string) error

	// Delete operations
	DeleteTask(ctx context.Context, label string) error
	DeleteEndedBefore(ctx context.Context, endedState string, cutoff int32) (int64, error)

	// Utility
	Close() error
}

// Options tunes the connection opened by NewWithOptions
type Options struct {
	// BusyTimeout makes SQLite wait on a lock held by another process instead of failing at once
	BusyTimeout time.Duration
	// QueryTimeout bounds every single statement; zero means no bound
	QueryTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens dbPath, applies connection options and brings the schema up to date
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// One connection: the tool is single-threaded and ":memory:" databases are per-connection.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if opts.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout = %d", opts.BusyTimeout.Milliseconds())
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("set busy timeout", err)
		}
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	logging.Debugf("opened database %s\n", dbPath)
	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

// CreateTask inserts a new row and returns the number of rows written.
// A duplicate label violates the primary key and surfaces as a database error.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO tasks (label, time, created_on, begin_dt, end_dt, state)
	VALUES (?, ?, ?, ?, ?, ?)`

	return ExecuteWithCount(ctx, r.db, "insert task", query,
		task.Label, task.Time, task.CreatedOn, task.BeginDt, task.EndDt, task.State)
}

// GetTask retrieves a task by label
func (r *SQLiteRepository) GetTask(ctx context.Context, label string) (*Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE label = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", label, label)
}

// ListTasks retrieves all tasks, most recently created first
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_on DESC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// ListTasksByState retrieves the tasks whose stored state code equals state
func (r *SQLiteRepository) ListTasksByState(ctx context.Context, state string) ([]*Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE state = ? ORDER BY created_on DESC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", state)
}

// TaskExists reports whether a row with the label exists
func (r *SQLiteRepository) TaskExists(ctx context.Context, label string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE label = ?)`, label).Scan(&exists)
	if err != nil {
		return false, HandleDatabaseError("check task exists", err)
	}
	return exists, nil
}

// UpdateTask writes every mutable column of the row identified by task.Label.
// created_on is never rewritten.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE tasks
	SET time = ?, begin_dt = ?, end_dt = ?, state = ?
	WHERE label = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", task.Label,
		task.Time, task.BeginDt, task.EndDt, task.State, task.Label)
}

// UpdateTaskState overwrites only the state column
func (r *SQLiteRepository) UpdateTaskState(ctx context.Context, label string, state string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE tasks SET state = ? WHERE label = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", label, state, label)
}

// UpdateTaskLabel renames a task
func (r *SQLiteRepository) UpdateTaskLabel(ctx context.Context, label string, newLabel string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE tasks SET label = ? WHERE label = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", label, newLabel, label)
}

// DeleteTask deletes a task by label
func (r *SQLiteRepository) DeleteTask(ctx context.Context, label string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE label = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", label, label)
}

// DeleteEndedBefore deletes every row in endedState whose end_dt is strictly before cutoff
func (r *SQLiteRepository) DeleteEndedBefore(ctx context.Context, endedState string, cutoff int32) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE state = ? AND end_dt < ?`
	return ExecuteWithCount(ctx, r.db, "delete ended tasks", query, endedState, cutoff)
}
