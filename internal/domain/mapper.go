package domain

import (
	"clockit/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database row, truncating to whole seconds.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		Label:     domainTask.Label,
		Time:      sqlite.FormatDurationForDB(domainTask.AccumulatedTime),
		CreatedOn: sqlite.FormatTimeForDB(domainTask.CreatedOn),
		BeginDt:   sqlite.FormatTimeForDB(domainTask.BeginDt),
		EndDt:     sqlite.FormatTimeForDB(domainTask.EndDt),
		State:     domainTask.State.SQLCode(),
	}
}

// FromDatabase converts a database row to a domain Task.
// An unknown state code fails the conversion instead of defaulting.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) (Task, error) {
	state, err := ParseSQLCode(dbTask.State)
	if err != nil {
		return Task{}, err
	}
	return Task{
		Label:           dbTask.Label,
		State:           state,
		AccumulatedTime: sqlite.ParseDurationFromDB(dbTask.Time),
		CreatedOn:       sqlite.ParseTimeFromDB(dbTask.CreatedOn),
		BeginDt:         sqlite.ParseTimeFromDB(dbTask.BeginDt),
		EndDt:           sqlite.ParseTimeFromDB(dbTask.EndDt),
	}, nil
}

// FromDatabaseSlice converts database rows to domain Tasks, failing on the first bad row.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) ([]Task, error) {
	domainTasks := make([]Task, 0, len(dbTasks))
	for _, dbTask := range dbTasks {
		task, err := m.FromDatabase(*dbTask)
		if err != nil {
			return nil, err
		}
		domainTasks = append(domainTasks, task)
	}
	return domainTasks, nil
}
