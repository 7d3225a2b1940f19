package action

// Status represents the lifecycle state of a proposed action.
type Status string

const (
	StatusProposed   Status = "proposed"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusExecuting  Status = "executing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRolledBack Status = "rolled_back"
)

// transitions encodes the forward-only lifecycle graph. A status missing from
// the map has no outgoing edges. StatusApproved may move straight to
// StatusFailed when validation fails before the executor is ever invoked.
var transitions = map[Status][]Status{
	StatusProposed:  {StatusApproved, StatusRejected},
	StatusApproved:  {StatusExecuting, StatusFailed},
	StatusExecuting: {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusRolledBack},
}

// IsTerminal reports whether no further execution is possible from this
// status. StatusCompleted counts as terminal even though a compensating
// rollback may still follow.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusFailed, StatusRolledBack:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving to next is a legal forward move.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range transitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
