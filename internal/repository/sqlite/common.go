package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"clockit/internal/errors"
	"clockit/internal/logging"
)

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewDatabaseError(operation, err)
}

// HandleNoRowsError handles sql.ErrNoRows errors consistently
func HandleNoRowsError(err error, entityType string, id string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(entityType, id)
	}
	return err
}

// ValidateRowsAffected checks that a statement keyed on a unique id touched exactly one row.
// Zero rows is NotFound; more than one means the uniqueness of the key was broken.
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	switch {
	case rows == 0:
		return errors.NewNotFoundError(entityType, id)
	case rows > 1:
		return errors.NewDatabaseError(
			"affect single "+entityType,
			fmt.Errorf("%d rows affected for %s", rows, id),
		)
	}
	return nil
}

// ExecuteWithCount executes a statement and returns the number of rows it affected
func ExecuteWithCount(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError(operation, err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, HandleDatabaseError("get rows affected", err)
	}

	logging.Debugf("%s: %d row(s) affected\n", operation, count)
	return count, nil
}

// ExecuteWithRowsAffected executes a query and validates that exactly one row was affected
func ExecuteWithRowsAffected(ctx context.Context, db *sql.DB, query string, entityType string, id string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("execute query", err)
	}

	return ValidateRowsAffected(result, entityType, id)
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if err = HandleNoRowsError(err, entityType, id); errors.IsNotFound(err) {
			return nil, err
		}
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}
