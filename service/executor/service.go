package executor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/viant/actiongate/extension"
	"github.com/viant/actiongate/internal/clock"
	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/model/types"
	"github.com/viant/actiongate/service/approval"
	"github.com/viant/actiongate/service/dao"
	"github.com/viant/actiongate/service/dao/store"
	"github.com/viant/actiongate/service/event"
	"github.com/viant/actiongate/tracing"
)

// Listener is invoked once per execution or rollback attempt, after the
// result has been recorded. Implementations can log, collect metrics or
// mirror results into external systems.
type Listener func(anAction *action.ProposedAction, result *action.Result)

// Summary reports the engine's operational state. It exists for visibility,
// not correctness.
type Summary struct {
	RegisteredExecutors []string `json:"registeredExecutors"`
	PendingActions      int      `json:"pendingActions"`
	TotalExecuted       int      `json:"totalExecuted"`
	Succeeded           int      `json:"succeeded"`
	Failed              int      `json:"failed"`
	DryRunByDefault     bool     `json:"dryRunByDefault"`
	MaxActionsPerRun    int      `json:"maxActionsPerRun"`
}

// Service orchestrates execution of approved actions.
type Service interface {
	// Execute processes the actions currently in StatusApproved; anything
	// else in the batch is skipped by design so callers may submit mixed
	// batches freely. At most MaxActionsPerRun actions are processed per
	// call, in the order given; the caller resubmits the excess - the
	// engine keeps no hidden queue of deferred work.
	Execute(ctx context.Context, actions []*action.ProposedAction, options ...RunOption) ([]*action.Result, error)

	// Rollback compensates previously executed actions. When no prior
	// result exists, or it never advertised rollback support, a failed
	// result is returned without contacting the executor.
	Rollback(ctx context.Context, actionIDs []string) ([]*action.Result, error)

	// ExecutionLog returns a copy of the append-only execution log.
	ExecutionLog() []*action.Result

	// Result returns the most recent result recorded for the action id.
	Result(actionID string) *action.Result

	// Summary reports the engine's current state.
	Summary(ctx context.Context) *Summary
}

// Record pairs an action with its most recent result. The engine keeps one
// Record per action id; rollback reads the latest attempt from here.
type Record struct {
	Action *action.ProposedAction
	Result *action.Result
}

type service struct {
	executors        *extension.Executors
	gate             approval.Service // optional, Summary only
	maxActionsPerRun int
	dryRunByDefault  bool
	listener         Listener
	events           *event.Publisher[*action.Result]

	mu      sync.RWMutex
	log     []*action.Result
	records dao.Service[string, Record] // action id -> latest attempt
}

func (s *service) Execute(ctx context.Context, actions []*action.ProposedAction, options ...RunOption) ([]*action.Result, error) {
	runOpts := newRunOptions(options)
	dryRun := s.dryRunByDefault
	if runOpts.dryRun != nil {
		dryRun = *runOpts.dryRun
	}

	ctx, span := tracing.StartSpan(ctx, "engine.execute")
	defer span.End()

	var actionable []*action.ProposedAction
	for _, anAction := range actions {
		if anAction != nil && anAction.IsActionable() {
			actionable = append(actionable, anAction)
		}
	}
	if len(actionable) > s.maxActionsPerRun {
		log.Printf("execution cap: running %d of %d approved actions", s.maxActionsPerRun, len(actionable))
		actionable = actionable[:s.maxActionsPerRun]
	}

	var results []*action.Result
	for _, anAction := range actionable {
		result := s.executeOne(ctx, anAction, dryRun)
		results = append(results, result)
		s.append(ctx, anAction, result)
		s.notify(ctx, event.TopicActionExecuted, anAction, result)
	}

	span.WithAttributes(map[string]string{
		"actions": strconv.Itoa(len(results)),
		"dryRun":  strconv.FormatBool(dryRun),
	})
	return results, nil
}

func (s *service) executeOne(ctx context.Context, anAction *action.ProposedAction, dryRun bool) (result *action.Result) {
	ctx, span := tracing.StartSpan(ctx, "engine."+string(anAction.Type))
	defer span.End()

	anExecutor := s.executors.Match(anAction)
	started := clock.Now()

	// A panicking executor must not abort the rest of the batch.
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("executor %v panicked: %v", anExecutor.Name(), r)
			log.Printf("action %v: %v", anAction.ID, err)
			_ = anAction.SetStatus(action.StatusFailed)
			span.SetStatus(err)
			result = failedResult(anAction.ID, "execution error: "+err.Error(), err.Error(), dryRun, started)
		}
	}()

	if ok, reason := anExecutor.Validate(ctx, anAction); !ok {
		_ = anAction.SetStatus(action.StatusFailed)
		span.SetStatus(errors.New(reason))
		return failedResult(anAction.ID, "validation failed: "+reason, reason, dryRun, started)
	}

	_ = anAction.SetStatus(action.StatusExecuting)
	executedAt := clock.Now()
	anAction.ExecutedAt = &executedAt

	result, err := anExecutor.Execute(ctx, anAction, dryRun)
	if err == nil && result == nil {
		err = fmt.Errorf("executor %v returned no result", anExecutor.Name())
	}
	if err != nil {
		log.Printf("executor %v failed on action %v: %v", anExecutor.Name(), anAction.ID, err)
		_ = anAction.SetStatus(action.StatusFailed)
		span.SetStatus(err)
		return failedResult(anAction.ID, "execution error: "+err.Error(), err.Error(), dryRun, started)
	}

	_ = anAction.SetStatus(result.Status)
	if result.Status == action.StatusCompleted {
		completedAt := clock.Now()
		anAction.CompletedAt = &completedAt
	}
	span.SetStatus(nil)
	return result
}

func (s *service) Rollback(ctx context.Context, actionIDs []string) ([]*action.Result, error) {
	ctx, span := tracing.StartSpan(ctx, "engine.rollback")
	defer span.End()

	var results []*action.Result
	for _, id := range actionIDs {
		entry := s.entry(ctx, id)
		if entry == nil {
			results = append(results, failedResult(id, "no execution record for this action",
				ErrNoExecutionRecord.Error(), false, clock.Now()))
			continue
		}
		if !entry.Result.RollbackAvailable {
			results = append(results, failedResult(id, "rollback not available for this action",
				ErrRollbackNotAvailable.Error(), false, clock.Now()))
			continue
		}
		capable, ok := s.executors.Match(entry.Action).(types.RollbackExecutor)
		if !ok {
			results = append(results, failedResult(id, "executor does not support rollback",
				ErrRollbackNotAvailable.Error(), false, clock.Now()))
			continue
		}

		result := s.rollbackOne(ctx, capable, entry)
		results = append(results, result)
		s.append(ctx, entry.Action, result)
		s.notify(ctx, event.TopicActionRolledBack, entry.Action, result)
	}
	span.WithAttributes(map[string]string{"actions": strconv.Itoa(len(results))})
	return results, nil
}

func (s *service) rollbackOne(ctx context.Context, capable types.RollbackExecutor, entry *Record) (result *action.Result) {
	started := clock.Now()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("executor %v panicked during rollback: %v", capable.Name(), r)
			log.Printf("action %v: %v", entry.Action.ID, err)
			result = failedResult(entry.Action.ID, "rollback error: "+err.Error(), err.Error(), false, started)
		}
	}()

	result, err := capable.Rollback(ctx, entry.Action, entry.Result)
	if err == nil && result == nil {
		err = fmt.Errorf("executor %v returned no rollback result", capable.Name())
	}
	if err != nil {
		log.Printf("rollback failed for action %v: %v", entry.Action.ID, err)
		return failedResult(entry.Action.ID, "rollback error: "+err.Error(), err.Error(), false, started)
	}
	if result.Status == action.StatusRolledBack {
		_ = entry.Action.SetStatus(action.StatusRolledBack)
	}
	return result
}

func (s *service) ExecutionLog() []*action.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]*action.Result, len(s.log))
	copy(ret, s.log)
	return ret
}

func (s *service) Result(actionID string) *action.Result {
	if entry := s.entry(context.Background(), actionID); entry != nil {
		return entry.Result
	}
	return nil
}

func (s *service) Summary(ctx context.Context) *Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ret := &Summary{
		RegisteredExecutors: s.executors.Names(),
		TotalExecuted:       len(s.log),
		DryRunByDefault:     s.dryRunByDefault,
		MaxActionsPerRun:    s.maxActionsPerRun,
	}
	for _, result := range s.log {
		if result.Succeeded() {
			ret.Succeeded++
		} else if result.Status == action.StatusFailed {
			ret.Failed++
		}
	}
	if s.gate != nil {
		if pending, err := s.gate.Pending(ctx); err == nil {
			ret.PendingActions = len(pending)
		}
	}
	return ret
}

func (s *service) entry(ctx context.Context, actionID string) *Record {
	entry, err := s.records.Load(ctx, actionID)
	if err != nil {
		log.Printf("failed to load execution record for action %v: %v", actionID, err)
		return nil
	}
	return entry
}

func (s *service) append(ctx context.Context, anAction *action.ProposedAction, result *action.Result) {
	s.mu.Lock()
	s.log = append(s.log, result)
	s.mu.Unlock()
	if err := s.records.Save(ctx, &Record{Action: anAction, Result: result}); err != nil {
		log.Printf("failed to index result for action %v: %v", anAction.ID, err)
	}

	if s.listener != nil {
		s.listener(anAction, result)
	}
}

func (s *service) notify(ctx context.Context, topic string, anAction *action.ProposedAction, result *action.Result) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event.New(topic, result)); err != nil {
		log.Printf("failed to publish %v event for action %v: %v", topic, anAction.ID, err)
	}
}

func failedResult(actionID, summary, errorText string, dryRun bool, started time.Time) *action.Result {
	finished := clock.Now()
	return &action.Result{
		ActionID:   actionID,
		Status:     action.StatusFailed,
		Summary:    summary,
		Error:      errorText,
		DryRun:     dryRun,
		StartedAt:  started,
		FinishedAt: &finished,
	}
}

// New creates an execution engine over the supplied executor registry.
func New(executors *extension.Executors, options ...Option) Service {
	ret := &service{
		executors:        executors,
		maxActionsPerRun: 50,
		dryRunByDefault:  true,
		records:          store.NewMemoryStore[string, Record](func(r *Record) string { return r.Action.ID }),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}
