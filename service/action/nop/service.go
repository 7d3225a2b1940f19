// Package nop provides the guaranteed fallback executor: it logs the action
// and reports completion without performing any external operation, so the
// pipeline never drops an action for lack of a handler.
package nop

import (
	"context"
	"fmt"
	"log"

	"github.com/viant/actiongate/internal/clock"
	"github.com/viant/actiongate/model/action"
)

const name = "log_only"

// Service is a no-op executor.
type Service struct{}

// New creates a no-op executor.
func New() *Service {
	return &Service{}
}

// Name returns the executor name.
func (s *Service) Name() string {
	return name
}

// CanHandle always claims the action; the registry only consults the
// fallback after every registered executor declined.
func (s *Service) CanHandle(_ *action.ProposedAction) bool {
	return true
}

// Validate accepts every action.
func (s *Service) Validate(_ context.Context, _ *action.ProposedAction) (bool, string) {
	return true, ""
}

// Execute logs the action and returns a completed result. Rollback is never
// advertised - nothing happened.
func (s *Service) Execute(_ context.Context, anAction *action.ProposedAction, dryRun bool) (*action.Result, error) {
	mode := "LOGGED"
	if dryRun {
		mode = "DRY-RUN"
	}
	log.Printf("[%v] action %q (%v) - saves $%.2f", mode, anAction.Title, anAction.Type, anAction.EstimatedSavings)

	finished := clock.Now()
	return &action.Result{
		ActionID: anAction.ID,
		Status:   action.StatusCompleted,
		Summary:  fmt.Sprintf("[%v] %v", mode, anAction.Title),
		Details: map[string]interface{}{
			"actionType":       string(anAction.Type),
			"estimatedSavings": anAction.EstimatedSavings,
			"stepsCount":       len(anAction.Steps),
			"mode":             mode,
		},
		DryRun:            dryRun,
		RollbackAvailable: false,
		StartedAt:         clock.Now(),
		FinishedAt:        &finished,
	}, nil
}
