package memory

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/viant/actiongate/internal/clock"
	"github.com/viant/actiongate/internal/idgen"
	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/policy"
	"github.com/viant/actiongate/service/approval"
	"github.com/viant/actiongate/service/dao"
	"github.com/viant/actiongate/service/dao/store"
	"github.com/viant/actiongate/service/event"
	"github.com/viant/actiongate/service/messaging"
	qmem "github.com/viant/actiongate/service/messaging/memory"
)

type service struct {
	rules             map[action.ApprovalLevel]*approval.Rule
	disabled          bool
	autoApproveGreen  bool
	autoApproveYellow bool

	// pending actions held for human approval, keyed by action id
	pending dao.Service[string, action.ProposedAction]

	// append-only decision ledger
	ledgerMu sync.RWMutex
	ledger   []*approval.Decision

	// yellow auto-approve notices
	notifications *qmem.Queue[approval.Notification]

	// optional decision event fan-out
	events *event.Publisher[*approval.Decision]
}

func actionKey(a *action.ProposedAction) string { return a.ID }

// New creates an in-memory approval gate. Green and yellow auto-approval are
// on by default; options narrow or disable them.
func New(options ...Option) approval.Service {
	ret := &service{
		rules:             map[action.ApprovalLevel]*approval.Rule{},
		autoApproveGreen:  true,
		autoApproveYellow: true,
		pending:           store.NewMemoryStore[string, action.ProposedAction](actionKey),
		notifications:     qmem.NewQueue[approval.Notification](qmem.DefaultConfig()),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

func (s *service) Process(ctx context.Context, actions []*action.ProposedAction) ([]*action.ProposedAction, []*action.ProposedAction, error) {
	var autoApproved, needsApproval []*action.ProposedAction
	runPolicy := policy.FromContext(ctx)

	for _, anAction := range actions {
		if anAction == nil {
			continue
		}
		if s.disabled {
			s.autoApprove(ctx, anAction, "approval disabled globally")
			autoApproved = append(autoApproved, anAction)
			continue
		}

		level := anAction.EffectiveLevel()
		eligible := runPolicy.AllowsAuto(string(anAction.Type))

		switch {
		case level == action.LevelGreen && s.autoApproveGreen && eligible:
			s.autoApprove(ctx, anAction, "green auto-approve")
			autoApproved = append(autoApproved, anAction)

		case level == action.LevelYellow && s.autoApproveYellow && eligible:
			s.autoApprove(ctx, anAction, "yellow auto-approve, owner notified")
			notice := &approval.Notification{
				ActionID: anAction.ID,
				Title:    anAction.Title,
				Level:    level,
				Message:  fmt.Sprintf("Auto-approved action: %v (saves $%.2f)", anAction.Title, anAction.EstimatedSavings),
			}
			// a slow notification consumer must never stall the gate
			if err := s.notifications.TryPublish(ctx, notice); err != nil {
				log.Printf("failed to queue notification for action %v: %v", anAction.ID, err)
			}
			autoApproved = append(autoApproved, anAction)

		default:
			// red, critical, or auto-approval withheld - hold for review
			_ = s.pending.Save(ctx, anAction)
			needsApproval = append(needsApproval, anAction)
		}
	}
	return autoApproved, needsApproval, nil
}

func (s *service) Approve(ctx context.Context, ids []string, approvedBy, reason string, modifications map[string]map[string]interface{}) ([]*action.ProposedAction, error) {
	var approved []*action.ProposedAction

	for _, id := range ids {
		anAction, _ := s.pending.Load(ctx, id)
		if anAction == nil {
			log.Printf("action %v not found in pending queue", id)
			continue
		}
		if anAction.Status != action.StatusProposed {
			log.Printf("action %v is %v, cannot approve", id, anAction.Status)
			continue
		}

		if rule := s.Rule(anAction.EffectiveLevel()); rule != nil && rule.RequireAll && len(rule.Approvers) > 0 {
			partial := approval.RecordPartialApproval(anAction, approvedBy)
			if len(partial) < len(rule.Approvers) {
				s.record(ctx, anAction.ID, approval.DecisionPartial, approvedBy,
					fmt.Sprintf("multi-party: %d/%d approvals", len(partial), len(rule.Approvers)))
				continue
			}
		}

		if mods := modifications[id]; len(mods) > 0 {
			applyModifications(anAction, mods)
		}
		if err := anAction.SetStatus(action.StatusApproved); err != nil {
			return approved, err
		}
		now := clock.Now()
		anAction.ApprovedAt = &now
		anAction.ApprovedBy = approvedBy
		approved = append(approved, anAction)
		s.record(ctx, anAction.ID, approval.DecisionApproved, approvedBy, reason)
	}
	return approved, nil
}

func (s *service) Reject(ctx context.Context, ids []string, rejectedBy, reason string) ([]*action.ProposedAction, error) {
	var rejected []*action.ProposedAction

	for _, id := range ids {
		anAction, _ := s.pending.Load(ctx, id)
		if anAction == nil {
			log.Printf("action %v not found in pending queue", id)
			continue
		}
		if anAction.Status != action.StatusProposed {
			log.Printf("action %v is %v, cannot reject", id, anAction.Status)
			continue
		}
		if err := anAction.SetStatus(action.StatusRejected); err != nil {
			return rejected, err
		}
		rejected = append(rejected, anAction)
		s.record(ctx, anAction.ID, approval.DecisionRejected, rejectedBy, reason)
	}
	return rejected, nil
}

func (s *service) Pending(ctx context.Context) ([]*action.ProposedAction, error) {
	held, err := s.pending.List(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]*action.ProposedAction, 0, len(held))
	for _, anAction := range held {
		if anAction.Status == action.StatusProposed {
			pending = append(pending, anAction)
		}
	}
	return pending, nil
}

func (s *service) Action(ctx context.Context, id string) (*action.ProposedAction, error) {
	return s.pending.Load(ctx, id)
}

func (s *service) Rule(level action.ApprovalLevel) *approval.Rule {
	return s.rules[level]
}

func (s *service) Decisions() []*approval.Decision {
	s.ledgerMu.RLock()
	defer s.ledgerMu.RUnlock()
	ret := make([]*approval.Decision, len(s.ledger))
	copy(ret, s.ledger)
	return ret
}

func (s *service) Notifications() messaging.Queue[approval.Notification] {
	return s.notifications
}

func (s *service) autoApprove(ctx context.Context, anAction *action.ProposedAction, reason string) {
	_ = anAction.SetStatus(action.StatusApproved)
	now := clock.Now()
	anAction.ApprovedAt = &now
	anAction.ApprovedBy = approval.SystemAutoApprover
	s.record(ctx, anAction.ID, approval.DecisionApproved, approval.SystemAutoApprover, reason)
}

func (s *service) record(ctx context.Context, actionID, decision, decidedBy, reason string) {
	entry := &approval.Decision{
		ID:        idgen.New(),
		ActionID:  actionID,
		Decision:  decision,
		DecidedBy: decidedBy,
		Reason:    reason,
		DecidedAt: clock.Now(),
	}
	s.ledgerMu.Lock()
	s.ledger = append(s.ledger, entry)
	s.ledgerMu.Unlock()

	if s.events != nil {
		if err := s.events.Publish(ctx, event.New(event.TopicDecisionCreated, entry)); err != nil {
			log.Printf("failed to publish decision event for action %v: %v", actionID, err)
		}
	}
}

// applyModifications updates known fields; unrecognised keys land in the
// metadata bag so the approver's intent is never silently lost.
func applyModifications(anAction *action.ProposedAction, mods map[string]interface{}) {
	for key, value := range mods {
		switch key {
		case "title":
			if text, ok := value.(string); ok {
				anAction.Title = text
			}
		case "description":
			if text, ok := value.(string); ok {
				anAction.Description = text
			}
		case "estimated_savings":
			if amount, ok := asFloat(value); ok {
				anAction.EstimatedSavings = amount
			}
		case "confidence":
			if amount, ok := asFloat(value); ok {
				anAction.Confidence = amount
			}
		case "parameters":
			if parameters, ok := value.(map[string]interface{}); ok {
				for name, parameter := range parameters {
					if anAction.Parameters == nil {
						anAction.Parameters = map[string]interface{}{}
					}
					anAction.Parameters[name] = parameter
				}
			}
		default:
			anAction.EnsureMetadata()[key] = value
		}
	}
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

var _ approval.Service = (*service)(nil)
