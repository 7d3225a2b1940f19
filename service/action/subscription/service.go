// Package subscription implements the executor for vendor subscription
// cancellation. Cancellation is irreversible from this system's point of
// view, so the executor never advertises rollback.
package subscription

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/structology/conv"
	"github.com/viant/x"

	"github.com/viant/actiongate/extension"
	"github.com/viant/actiongate/internal/clock"
	"github.com/viant/actiongate/model/action"
)

const name = "subscription"

// Input is the typed view over an action's parameters bag.
type Input struct {
	Vendor         string  `json:"vendor"`
	SubscriptionID string  `json:"subscriptionId"`
	MonthlyCost    float64 `json:"monthlyCost,omitempty"`
	EffectiveDate  string  `json:"effectiveDate,omitempty"`
}

// Service cancels vendor subscriptions.
type Service struct {
	converter *conv.Converter
}

// New creates a subscription executor.
func New() *Service {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	options.AccessUnexported = true
	return &Service{converter: conv.NewConverter(options)}
}

// Name returns the executor name.
func (s *Service) Name() string {
	return name
}

// InitTypes registers the executor input type for host introspection.
func (s *Service) InitTypes(types *extension.Types) {
	types.Register(x.NewType(reflect.TypeOf(Input{})))
}

// CanHandle claims cancellation actions and explicit overrides.
func (s *Service) CanHandle(anAction *action.ProposedAction) bool {
	return anAction.Executor == name || anAction.Type == action.TypeCancelSubscription
}

// Validate checks the required parameters without side effects.
func (s *Service) Validate(_ context.Context, anAction *action.ProposedAction) (bool, string) {
	input, err := s.input(anAction)
	if err != nil {
		return false, err.Error()
	}
	if input.Vendor == "" || input.SubscriptionID == "" {
		return false, "missing required parameters: vendor and subscriptionId"
	}
	return true, ""
}

// Execute cancels (or previews cancelling) the subscription.
func (s *Service) Execute(_ context.Context, anAction *action.ProposedAction, dryRun bool) (*action.Result, error) {
	input, err := s.input(anAction)
	if err != nil {
		return nil, err
	}

	var summary string
	if dryRun {
		summary = fmt.Sprintf("Would cancel %v subscription %v", input.Vendor, input.SubscriptionID)
	} else {
		// A real deployment calls the vendor's billing API here.
		summary = fmt.Sprintf("Cancelled %v subscription %v", input.Vendor, input.SubscriptionID)
	}

	details := map[string]interface{}{
		"vendor":         input.Vendor,
		"subscriptionId": input.SubscriptionID,
	}
	if input.MonthlyCost > 0 {
		details["monthlySavings"] = input.MonthlyCost
	}
	if input.EffectiveDate != "" {
		details["effectiveDate"] = input.EffectiveDate
	}

	finished := clock.Now()
	return &action.Result{
		ActionID:          anAction.ID,
		Status:            action.StatusCompleted,
		Summary:           summary,
		Details:           details,
		DryRun:            dryRun,
		RollbackAvailable: false,
		StartedAt:         clock.Now(),
		FinishedAt:        &finished,
	}, nil
}

func (s *Service) input(anAction *action.ProposedAction) (*Input, error) {
	input := &Input{}
	if err := s.converter.Convert(anAction.Parameters, input); err != nil {
		return nil, fmt.Errorf("invalid subscription parameters: %w", err)
	}
	return input, nil
}
