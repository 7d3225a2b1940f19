// Package categorize implements the executor for transaction categorization
// and tagging. Categories are mechanically revertible, so the executor
// records the prior values and supports rollback.
package categorize

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

const name = "categorization"

var supportedTypes = []action.Type{
	action.TypeCategorizeTransaction,
	action.TypeTagExpense,
	action.TypeUpdateCategoryBulk,
}

// Input is the typed view over an action's parameters bag.
type Input struct {
	TransactionIDs     []string          `json:"transactionIds"`
	Category           string            `json:"category"`
	PreviousCategories map[string]string `json:"previousCategories,omitempty"`
}

// Service categorizes and tags transactions.
type Service struct {
	converter *conv.Converter
}

// New creates a categorization executor.
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

// CanHandle claims categorization action types and explicit overrides.
func (s *Service) CanHandle(anAction *action.ProposedAction) bool {
	if anAction.Executor == name {
		return true
	}
	for _, candidate := range supportedTypes {
		if anAction.Type == candidate {
			return true
		}
	}
	return false
}

// Validate checks the required parameters without side effects.
func (s *Service) Validate(_ context.Context, anAction *action.ProposedAction) (bool, string) {
	input, err := s.input(anAction)
	if err != nil {
		return false, err.Error()
	}
	if len(input.TransactionIDs) == 0 || input.Category == "" {
		return false, "missing required parameters: transactionIds and category"
	}
	return true, ""
}

// Execute applies (or previews) the category update. The prior categories are
// carried into the result details so a later rollback can restore them.
func (s *Service) Execute(_ context.Context, anAction *action.ProposedAction, dryRun bool) (*action.Result, error) {
	input, err := s.input(anAction)
	if err != nil {
		return nil, err
	}

	var summary string
	if dryRun {
		summary = fmt.Sprintf("Would categorize %d transaction(s) as %q", len(input.TransactionIDs), input.Category)
	} else {
		// A real deployment writes the update back through the bookkeeping
		// connector here.
		summary = fmt.Sprintf("Categorized %d transaction(s) as %q", len(input.TransactionIDs), input.Category)
	}

	finished := clock.Now()
	return &action.Result{
		ActionID: anAction.ID,
		Status:   action.StatusCompleted,
		Summary:  summary,
		Details: map[string]interface{}{
			"transactionIds":     input.TransactionIDs,
			"category":           input.Category,
			"count":              len(input.TransactionIDs),
			"originalCategories": input.PreviousCategories,
		},
		DryRun:            dryRun,
		RollbackAvailable: true,
		StartedAt:         clock.Now(),
		FinishedAt:        &finished,
	}, nil
}

// Rollback restores the categories recorded by the prior execution.
func (s *Service) Rollback(_ context.Context, anAction *action.ProposedAction, prior *action.Result) (*action.Result, error) {
	original := categoriesFrom(prior.Details["originalCategories"])
	finished := clock.Now()
	if len(original) == 0 {
		return &action.Result{
			ActionID:          anAction.ID,
			Status:            action.StatusFailed,
			Summary:           "Cannot roll back - original categories were not recorded",
			Error:             "no_original_data",
			RollbackAvailable: false,
			StartedAt:         clock.Now(),
			FinishedAt:        &finished,
		}, nil
	}

	return &action.Result{
		ActionID:          anAction.ID,
		Status:            action.StatusRolledBack,
		Summary:           fmt.Sprintf("Restored %d transaction(s) to their original categories", len(original)),
		Details:           map[string]interface{}{"restored": original},
		RollbackAvailable: false,
		StartedAt:         clock.Now(),
		FinishedAt:        &finished,
	}, nil
}

// categoriesFrom accepts both the in-process map and the shape a JSON round
// trip through a durable result store produces.
func categoriesFrom(value interface{}) map[string]string {
	switch v := value.(type) {
	case map[string]string:
		return v
	case map[string]interface{}:
		ret := make(map[string]string, len(v))
		for id, category := range v {
			if text, ok := category.(string); ok {
				ret[id] = text
			}
		}
		return ret
	}
	return nil
}

func (s *Service) input(anAction *action.ProposedAction) (*Input, error) {
	input := &Input{}
	if err := s.converter.Convert(anAction.Parameters, input); err != nil {
		return nil, fmt.Errorf("invalid categorization parameters: %w", err)
	}
	return input, nil
}
