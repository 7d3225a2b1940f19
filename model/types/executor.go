package types

import (
	"context"

	"github.com/viant/actiongate/model/action"
)

// Executor performs one category of proposed action. Implementations are
// registered with the extension registry and selected by capability: the
// engine asks each registered executor whether it can handle an action and
// uses the first match in registration order.
type Executor interface {
	// Name returns the executor name, used for explicit overrides and
	// operational reporting.
	Name() string

	// CanHandle reports whether this executor claims the supplied action,
	// either by action type or by an explicit executor-name override.
	CanHandle(anAction *action.ProposedAction) bool

	// Validate checks that the required parameters are present. It must not
	// have side effects. When invalid, the returned reason explains why.
	Validate(ctx context.Context, anAction *action.ProposedAction) (bool, string)

	// Execute performs the action. Under dryRun it must compute and describe
	// the would-be effect without mutating any external system of record, and
	// its summary must be distinguishable from a real-run summary.
	Execute(ctx context.Context, anAction *action.ProposedAction, dryRun bool) (*action.Result, error)
}

// RollbackExecutor is implemented only by executors whose side effect is
// mechanically undoable. Irrevocable operations report
// Result.RollbackAvailable=false and need not implement it.
type RollbackExecutor interface {
	Executor

	// Rollback compensates a previously completed execution, using the prior
	// result to locate what has to be undone.
	Rollback(ctx context.Context, anAction *action.ProposedAction, prior *action.Result) (*action.Result, error)
}
