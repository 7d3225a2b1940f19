package action

import "time"

// Result captures the outcome of one execution or rollback attempt. Exactly
// one result is produced per attempt and appended to the execution log; it is
// never mutated afterwards.
type Result struct {
	ActionID          string                 `json:"actionID"`
	Status            Status                 `json:"status"`
	Summary           string                 `json:"summary"`
	Details           map[string]interface{} `json:"details,omitempty"`
	Error             string                 `json:"error,omitempty"`
	DryRun            bool                   `json:"dryRun,omitempty"`
	RollbackAvailable bool                   `json:"rollbackAvailable,omitempty"`
	StartedAt         time.Time              `json:"startedAt"`
	FinishedAt        *time.Time             `json:"finishedAt,omitempty"`
}

// Succeeded reports whether the attempt ended in a successful status.
func (r *Result) Succeeded() bool {
	return r.Status == StatusCompleted || r.Status == StatusRolledBack
}
