package approval

import (
	"time"

	"github.com/viant/actiongate/model/action"
)

// SystemAutoApprover is the actor recorded on decisions made without a human.
const SystemAutoApprover = "system:auto"

// Decision kinds recorded in the ledger.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
	DecisionPartial  = "partial_approval"
)

// Rule is the per-tier approval policy. TimeoutHours is advisory: the gate
// runs no background clock, a hosting scheduler uses it through ExpireStale.
type Rule struct {
	Level        action.ApprovalLevel `json:"level" yaml:"level"`
	Approvers    []string             `json:"approvers,omitempty" yaml:"approvers,omitempty"`
	RequireAll   bool                 `json:"requireAll,omitempty" yaml:"requireAll,omitempty"`
	TimeoutHours int                  `json:"timeoutHours,omitempty" yaml:"timeoutHours,omitempty"`
}

// Decision is one immutable ledger entry. The ledger is append-only; entries
// are never edited or deleted - this is the audit trail.
type Decision struct {
	ID        string    `json:"id"`
	ActionID  string    `json:"actionID"`
	Decision  string    `json:"decision"`
	DecidedBy string    `json:"decidedBy"`
	Reason    string    `json:"reason,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}

// Notification is the record queued whenever a yellow action auto-approves.
// The gate only guarantees the record's existence; delivery is the host's
// responsibility.
type Notification struct {
	ActionID string               `json:"actionID"`
	Title    string               `json:"title"`
	Level    action.ApprovalLevel `json:"level"`
	Message  string               `json:"message"`
}

// metadataApprovalsKey holds the partial multi-party approval list inside an
// action's metadata bag. Maintained only through gate methods.
const metadataApprovalsKey = "approvals"

// PartialApprovals returns the approver identities accumulated so far on a
// multi-party action.
func PartialApprovals(anAction *action.ProposedAction) []string {
	if anAction == nil || anAction.Metadata == nil {
		return nil
	}
	switch value := anAction.Metadata[metadataApprovalsKey].(type) {
	case []string:
		return value
	case []interface{}:
		ret := make([]string, 0, len(value))
		for _, item := range value {
			if text, ok := item.(string); ok {
				ret = append(ret, text)
			}
		}
		return ret
	}
	return nil
}

// RecordPartialApproval appends the approver to the action's partial-approval
// list when not present yet and returns the updated list. It is intended for
// gate implementations; hosts read the state via PartialApprovals.
func RecordPartialApproval(anAction *action.ProposedAction, approver string) []string {
	approvals := PartialApprovals(anAction)
	for _, existing := range approvals {
		if existing == approver {
			return approvals
		}
	}
	approvals = append(approvals, approver)
	anAction.EnsureMetadata()[metadataApprovalsKey] = approvals
	return approvals
}
