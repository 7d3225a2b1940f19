package executor

import "errors"

var (
	// ErrRollbackNotAvailable is surfaced on a rollback result when the prior
	// execution never advertised rollback support.
	ErrRollbackNotAvailable = errors.New("rollback_not_available")

	// ErrNoExecutionRecord is surfaced on a rollback result when no prior
	// execution result exists for the action id.
	ErrNoExecutionRecord = errors.New("no_execution_record")
)
