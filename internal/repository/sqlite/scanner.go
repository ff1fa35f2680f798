package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// taskColumns is the column order every ScanTask caller must select
const taskColumns = "label, time, created_on, begin_dt, end_dt, state"

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	err := scanner.Scan(
		&task.Label,
		&task.Time,
		&task.CreatedOn,
		&task.BeginDt,
		&task.EndDt,
		&task.State,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
