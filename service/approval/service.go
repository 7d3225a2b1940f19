package approval

import (
	"context"

	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/service/messaging"
)

// Service routes proposed actions through the tiered approval workflow:
// green auto-approves, yellow auto-approves and queues a notification, red
// and critical wait for an explicit human (or multi-party) decision.
//
// The service performs no authentication: approver identities are free-form
// strings the host has already verified.
type Service interface {
	// Process partitions a batch into auto-approved actions (now
	// StatusApproved) and actions held in the pending queue (still
	// StatusProposed). Input order is preserved in both lists and in the
	// decision ledger.
	Process(ctx context.Context, actions []*action.ProposedAction) (autoApproved, needsApproval []*action.ProposedAction, err error)

	// Approve approves pending actions. For a tier whose Rule requires all
	// named approvers the call contributes one identity and logs a
	// partial_approval until the list is complete. Ids that are unknown or
	// not StatusProposed are skipped, not errored. Optional per-action
	// modifications (action id -> field -> value) are applied just before
	// the action flips to StatusApproved.
	Approve(ctx context.Context, ids []string, approvedBy, reason string, modifications map[string]map[string]interface{}) ([]*action.ProposedAction, error)

	// Reject rejects pending actions, with the same skip rule as Approve.
	// An explicit reject halts the action outright, regardless of any
	// partial approvals accumulated so far.
	Reject(ctx context.Context, ids []string, rejectedBy, reason string) ([]*action.ProposedAction, error)

	// Pending lists actions waiting for human approval.
	Pending(ctx context.Context) ([]*action.ProposedAction, error)

	// Action looks up a held action by id; nil when unknown.
	Action(ctx context.Context, id string) (*action.ProposedAction, error)

	// Rule returns the approval rule configured for the tier, or nil.
	Rule(level action.ApprovalLevel) *Rule

	// Decisions returns a copy of the append-only decision ledger.
	Decisions() []*Decision

	// Notifications exposes the queue of yellow auto-approve notices.
	Notifications() messaging.Queue[Notification]
}
