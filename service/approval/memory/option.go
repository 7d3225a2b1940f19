package memory

import (
	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/service/approval"
	"github.com/viant/actiongate/service/dao"
	"github.com/viant/actiongate/service/event"
)

// Option customises the in-memory approval gate.
type Option func(*service)

// WithRules installs per-tier approval rules.
func WithRules(rules ...*approval.Rule) Option {
	return func(s *service) {
		for _, rule := range rules {
			if rule != nil {
				s.rules[rule.Level] = rule
			}
		}
	}
}

// WithApprovalDisabled turns the gate off globally: every action approves
// immediately as system:auto, still logged like any other decision.
func WithApprovalDisabled() Option {
	return func(s *service) { s.disabled = true }
}

// WithAutoApproveGreen toggles green auto-approval.
func WithAutoApproveGreen(enabled bool) Option {
	return func(s *service) { s.autoApproveGreen = enabled }
}

// WithAutoApproveYellow toggles yellow auto-approval.
func WithAutoApproveYellow(enabled bool) Option {
	return func(s *service) { s.autoApproveYellow = enabled }
}

// WithPendingDAO substitutes the pending-action store, e.g. with the
// filesystem DAO for a durable gate.
func WithPendingDAO(pending dao.Service[string, action.ProposedAction]) Option {
	return func(s *service) { s.pending = pending }
}

// WithEventPublisher attaches a publisher receiving every ledger entry as a
// decision.created event.
func WithEventPublisher(events *event.Publisher[*approval.Decision]) Option {
	return func(s *service) { s.events = events }
}
