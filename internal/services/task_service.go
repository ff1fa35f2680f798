package services

import (
	"context"
	"math"
	"time"

	"clockit/internal/domain"
	"clockit/internal/errors"
	"clockit/internal/logging"
	"clockit/internal/repository/sqlite"
	"clockit/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo           sqlite.Repository
	mapper         *domain.TaskMapper
	labelValidator *validation.LabelValidator
	clock          Clock
}

// NewTaskService creates a TaskService reading the wall clock
func NewTaskService(repo sqlite.Repository, labelValidator *validation.LabelValidator) TaskService {
	return NewTaskServiceWithClock(repo, labelValidator, time.Now)
}

// NewTaskServiceWithClock creates a TaskService with an explicit clock
func NewTaskServiceWithClock(repo sqlite.Repository, labelValidator *validation.LabelValidator, clock Clock) TaskService {
	if labelValidator == nil {
		labelValidator = validation.NewLabelValidator(0, 0)
	}
	return &taskServiceImpl{
		repo:           repo,
		mapper:         domain.NewTaskMapper(),
		labelValidator: labelValidator,
		clock:          clock,
	}
}

func (s *taskServiceImpl) Now() time.Time {
	return s.clock()
}

func (s *taskServiceImpl) validateLabel(field, label string) error {
	if err := s.labelValidator.ValidateLabel(field, label); err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve).WithContext("field", field)
		}
		return errors.NewValidationError("invalid "+field, err)
	}
	return nil
}

// Create inserts a new task in the Created state and returns the rows written
func (s *taskServiceImpl) Create(ctx context.Context, label string) (int64, error) {
	return s.create(ctx, label, s.clock())
}

func (s *taskServiceImpl) create(ctx context.Context, label string, now time.Time) (int64, error) {
	if err := s.validateLabel("label", label); err != nil {
		return 0, err
	}

	row := s.mapper.ToDatabase(domain.NewTask(label, now))
	count, err := s.repo.CreateTask(ctx, &row)
	if err != nil {
		return 0, err
	}
	logging.Debugf("created task %q\n", label)
	return count, nil
}

// Find loads one task by label
func (s *taskServiceImpl) Find(ctx context.Context, label string) (*domain.Task, error) {
	row, err := s.repo.GetTask(ctx, label)
	if err != nil {
		return nil, err
	}

	task, err := s.mapper.FromDatabase(*row)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByState returns the tasks stored with the given persistence code
func (s *taskServiceImpl) FindByState(ctx context.Context, code string) ([]domain.Task, error) {
	state, err := domain.ParseSQLCode(code)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListTasksByState(ctx, state.SQLCode())
	if err != nil {
		return nil, err
	}
	return s.mapper.FromDatabaseSlice(rows)
}

// ListAll returns every task, most recently created first
func (s *taskServiceImpl) ListAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.FromDatabaseSlice(rows)
}

// Exists reports whether a task with the label is stored
func (s *taskServiceImpl) Exists(ctx context.Context, label string) (bool, error) {
	return s.repo.TaskExists(ctx, label)
}

// SetState overwrites the stored state from a short-form code, bypassing the state machine
func (s *taskServiceImpl) SetState(ctx context.Context, label string, shortCode string) error {
	state, err := domain.ParseShortCode(shortCode)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateTaskState(ctx, label, state.SQLCode()); err != nil {
		return err
	}
	logging.Debugf("set state of %q to %s\n", label, state)
	return nil
}

// Rename changes a task's label
func (s *taskServiceImpl) Rename(ctx context.Context, label string, newLabel string) error {
	if err := s.validateLabel("new label", newLabel); err != nil {
		return err
	}

	if err := s.repo.UpdateTaskLabel(ctx, label, newLabel); err != nil {
		return err
	}
	logging.Debugf("renamed %q to %q\n", label, newLabel)
	return nil
}

// Delete removes one task
func (s *taskServiceImpl) Delete(ctx context.Context, label string) error {
	if err := s.repo.DeleteTask(ctx, label); err != nil {
		return err
	}
	logging.Debugf("deleted task %q\n", label)
	return nil
}

// CleanExpired deletes ended tasks whose end time is older than now minus retention
func (s *taskServiceImpl) CleanExpired(ctx context.Context, retention time.Duration) (int64, error) {
	if retention < 0 {
		return 0, errors.NewInvalidInputError("retention", retention, "must not be negative")
	}

	return s.repo.DeleteEndedBefore(ctx, domain.StateEnded.SQLCode(), storedCutoff(s.clock(), retention))
}

// storedCutoff returns now minus retention in stored seconds, floored at the
// smallest storable instant.
func storedCutoff(now time.Time, retention time.Duration) int32 {
	cutoff := now.Unix() - int64(retention/time.Second)
	if cutoff < math.MinInt32 {
		return math.MinInt32
	}
	return sqlite.FormatTimeForDB(time.Unix(cutoff, 0))
}

// Start starts a task, creating it first when no task has the label.
// The returned flag reports whether the task was created.
func (s *taskServiceImpl) Start(ctx context.Context, label string) (*domain.Task, bool, error) {
	now := s.clock()

	task, err := s.Find(ctx, label)
	created := false
	if errors.IsNotFound(err) {
		if _, err := s.create(ctx, label, now); err != nil {
			return nil, false, err
		}
		fresh := domain.NewTask(label, now)
		task, err, created = &fresh, nil, true
	}
	if err != nil {
		return nil, false, err
	}

	if err := s.apply(ctx, task, now, (*domain.Task).Start); err != nil {
		return nil, false, err
	}
	return task, created, nil
}

// Pause closes the active interval of a started task
func (s *taskServiceImpl) Pause(ctx context.Context, label string) (*domain.Task, error) {
	return s.transition(ctx, label, s.clock(), (*domain.Task).Pause)
}

// End finishes a started or paused task
func (s *taskServiceImpl) End(ctx context.Context, label string) (*domain.Task, error) {
	return s.transition(ctx, label, s.clock(), (*domain.Task).End)
}

// transition loads the task and applies op at now
func (s *taskServiceImpl) transition(ctx context.Context, label string, now time.Time, op func(*domain.Task, time.Time) error) (*domain.Task, error) {
	task, err := s.Find(ctx, label)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, task, now, op); err != nil {
		return nil, err
	}
	return task, nil
}

// apply runs op on task and writes the whole row back
func (s *taskServiceImpl) apply(ctx context.Context, task *domain.Task, now time.Time, op func(*domain.Task, time.Time) error) error {
	from := task.State
	if err := op(task, now); err != nil {
		return err
	}

	row := s.mapper.ToDatabase(*task)
	if err := s.repo.UpdateTask(ctx, &row); err != nil {
		return err
	}

	logging.Debugf("task %q: %s -> %s\n", task.Label, from, task.State)
	return nil
}
