package executor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/actiongate/extension"
	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/service/action/nop"
	"github.com/viant/actiongate/service/executor"
)

// scriptedExecutor drives engine edge cases from tests.
type scriptedExecutor struct {
	name           string
	claims         []action.Type
	invalidReason  string
	panicOnExecute bool
	rollbackable   bool
	executed       int
	rolledBack     int
}

func (e *scriptedExecutor) Name() string { return e.name }

func (e *scriptedExecutor) CanHandle(anAction *action.ProposedAction) bool {
	for _, candidate := range e.claims {
		if anAction.Type == candidate {
			return true
		}
	}
	return false
}

func (e *scriptedExecutor) Validate(_ context.Context, _ *action.ProposedAction) (bool, string) {
	if e.invalidReason != "" {
		return false, e.invalidReason
	}
	return true, ""
}

func (e *scriptedExecutor) Execute(_ context.Context, anAction *action.ProposedAction, dryRun bool) (*action.Result, error) {
	e.executed++
	if e.panicOnExecute {
		panic("scripted panic")
	}
	return &action.Result{
		ActionID:          anAction.ID,
		Status:            action.StatusCompleted,
		Summary:           "done",
		DryRun:            dryRun,
		RollbackAvailable: e.rollbackable,
	}, nil
}

func (e *scriptedExecutor) Rollback(_ context.Context, anAction *action.ProposedAction, _ *action.Result) (*action.Result, error) {
	e.rolledBack++
	return &action.Result{
		ActionID: anAction.ID,
		Status:   action.StatusRolledBack,
		Summary:  "undone",
	}, nil
}

func approvedAction(actionType action.Type, title string) *action.ProposedAction {
	ret := action.New(actionType, title)
	_ = ret.SetStatus(action.StatusApproved)
	return ret
}

func TestService_Execute_DryRunDefault(t *testing.T) {
	engine := executor.New(extension.NewExecutors(nop.New()))
	anAction := approvedAction(action.TypeCustom, "Review vendor pricing")

	results, err := engine.Execute(context.Background(), []*action.ProposedAction{anAction})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(results))
	assert.True(t, results[0].DryRun)
	assert.True(t, strings.Contains(results[0].Summary, "DRY-RUN"))
	assert.Equal(t, action.StatusCompleted, results[0].Status)
	assert.False(t, results[0].RollbackAvailable)
	assert.Equal(t, action.StatusCompleted, anAction.Status)
	assert.NotNil(t, anAction.ExecutedAt)
	assert.NotNil(t, anAction.CompletedAt)
}

func TestService_Execute_RealRunOverride(t *testing.T) {
	engine := executor.New(extension.NewExecutors(nop.New()))
	anAction := approvedAction(action.TypeCustom, "Review vendor pricing")

	results, err := engine.Execute(context.Background(), []*action.ProposedAction{anAction}, executor.WithDryRun(false))
	assert.Nil(t, err)
	assert.False(t, results[0].DryRun)
	assert.True(t, strings.Contains(results[0].Summary, "LOGGED"))
}

func TestService_Execute_SkipsNonApproved(t *testing.T) {
	engine := executor.New(extension.NewExecutors(nop.New()))
	proposed := action.New(action.TypeCustom, "Still waiting")
	rejected := action.New(action.TypeCustom, "Turned down")
	_ = rejected.SetStatus(action.StatusRejected)
	approved := approvedAction(action.TypeCustom, "Good to go")

	results, err := engine.Execute(context.Background(),
		[]*action.ProposedAction{proposed, rejected, nil, approved})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(results))
	assert.Equal(t, approved.ID, results[0].ActionID)
	assert.Equal(t, action.StatusProposed, proposed.Status)
	assert.Equal(t, action.StatusRejected, rejected.Status)
}

func TestService_Execute_Cap(t *testing.T) {
	engine := executor.New(extension.NewExecutors(nop.New()), executor.WithMaxActionsPerRun(2))
	var batch []*action.ProposedAction
	for i := 0; i < 5; i++ {
		batch = append(batch, approvedAction(action.TypeCustom, "Capped run"))
	}

	results, err := engine.Execute(context.Background(), batch)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(results))
	// the excess is untouched, ready for resubmission
	for _, anAction := range batch[2:] {
		assert.Equal(t, action.StatusApproved, anAction.Status)
	}
}

func TestService_Execute_ValidationFailure(t *testing.T) {
	scripted := &scriptedExecutor{name: "scripted", claims: []action.Type{action.TypeCustom},
		invalidReason: "missing required parameter: target"}
	registry := extension.NewExecutors(nop.New())
	registry.Register(scripted)
	engine := executor.New(registry)
	anAction := approvedAction(action.TypeCustom, "Invalid input")

	results, err := engine.Execute(context.Background(), []*action.ProposedAction{anAction})
	assert.Nil(t, err)
	assert.Equal(t, action.StatusFailed, results[0].Status)
	assert.Equal(t, "missing required parameter: target", results[0].Error)
	assert.True(t, strings.HasPrefix(results[0].Summary, "validation failed"))
	assert.Equal(t, 0, scripted.executed)
	assert.Equal(t, action.StatusFailed, anAction.Status)
}

func TestService_Execute_PanicContainment(t *testing.T) {
	panicking := &scriptedExecutor{name: "panicking", claims: []action.Type{action.TypePayInvoice}, panicOnExecute: true}
	registry := extension.NewExecutors(nop.New())
	registry.Register(panicking)
	engine := executor.New(registry)

	broken := approvedAction(action.TypePayInvoice, "Panics")
	healthy := approvedAction(action.TypeCustom, "Survives")

	results, err := engine.Execute(context.Background(), []*action.ProposedAction{broken, healthy})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(results))
	assert.Equal(t, action.StatusFailed, results[0].Status)
	assert.Contains(t, results[0].Error, "panicked")
	assert.Equal(t, action.StatusCompleted, results[1].Status)
}

func TestService_Rollback(t *testing.T) {
	scripted := &scriptedExecutor{name: "scripted", claims: []action.Type{action.TypeCustom}, rollbackable: true}
	registry := extension.NewExecutors(nop.New())
	registry.Register(scripted)
	engine := executor.New(registry)

	anAction := approvedAction(action.TypeCustom, "Reversible change")
	_, err := engine.Execute(context.Background(), []*action.ProposedAction{anAction})
	assert.Nil(t, err)

	results, err := engine.Rollback(context.Background(), []string{anAction.ID})
	assert.Nil(t, err)
	assert.Equal(t, action.StatusRolledBack, results[0].Status)
	assert.Equal(t, action.StatusRolledBack, anAction.Status)
	assert.Equal(t, 1, scripted.rolledBack)
}

func TestService_Rollback_NoRecord(t *testing.T) {
	engine := executor.New(extension.NewExecutors(nop.New()))

	results, err := engine.Rollback(context.Background(), []string{"never-executed"})
	assert.Nil(t, err)
	assert.Equal(t, action.StatusFailed, results[0].Status)
	assert.Equal(t, executor.ErrNoExecutionRecord.Error(), results[0].Error)
}

func TestService_Rollback_NotAvailable(t *testing.T) {
	// the fallback completes but never advertises rollback
	engine := executor.New(extension.NewExecutors(nop.New()))
	anAction := approvedAction(action.TypeCustom, "Irrevocable")
	_, _ = engine.Execute(context.Background(), []*action.ProposedAction{anAction})

	results, err := engine.Rollback(context.Background(), []string{anAction.ID})
	assert.Nil(t, err)
	assert.Equal(t, action.StatusFailed, results[0].Status)
	assert.Equal(t, executor.ErrRollbackNotAvailable.Error(), results[0].Error)
	assert.Equal(t, action.StatusCompleted, anAction.Status)
}

// forwardOnly claims rollback in its result but does not implement it.
type forwardOnly struct{ executed int }

func (e *forwardOnly) Name() string                              { return "forward" }
func (e *forwardOnly) CanHandle(a *action.ProposedAction) bool   { return a.Type == action.TypeCustom }
func (e *forwardOnly) Validate(_ context.Context, _ *action.ProposedAction) (bool, string) {
	return true, ""
}

func (e *forwardOnly) Execute(_ context.Context, anAction *action.ProposedAction, dryRun bool) (*action.Result, error) {
	e.executed++
	return &action.Result{
		ActionID:          anAction.ID,
		Status:            action.StatusCompleted,
		DryRun:            dryRun,
		RollbackAvailable: true,
	}, nil
}

func TestService_Rollback_ExecutorWithoutSupport(t *testing.T) {
	forward := &forwardOnly{}
	registry := extension.NewExecutors(nop.New())
	registry.Register(forward)
	engine := executor.New(registry)

	anAction := approvedAction(action.TypeCustom, "Claims rollback")
	_, _ = engine.Execute(context.Background(), []*action.ProposedAction{anAction})

	results, err := engine.Rollback(context.Background(), []string{anAction.ID})
	assert.Nil(t, err)
	assert.Equal(t, executor.ErrRollbackNotAvailable.Error(), results[0].Error)
	assert.Equal(t, 1, forward.executed)
}

func TestService_ExecutionLogAndSummary(t *testing.T) {
	scripted := &scriptedExecutor{name: "scripted", claims: []action.Type{action.TypeCustom}, rollbackable: true}
	failing := &scriptedExecutor{name: "failing", claims: []action.Type{action.TypePayInvoice},
		invalidReason: "missing required parameter: invoiceId"}
	registry := extension.NewExecutors(nop.New())
	registry.Register(scripted)
	registry.Register(failing)
	engine := executor.New(registry)

	good := approvedAction(action.TypeCustom, "Works")
	bad := approvedAction(action.TypePayInvoice, "Fails validation")
	_, err := engine.Execute(context.Background(), []*action.ProposedAction{good, bad})
	assert.Nil(t, err)
	_, err = engine.Rollback(context.Background(), []string{good.ID})
	assert.Nil(t, err)

	executionLog := engine.ExecutionLog()
	assert.Equal(t, 3, len(executionLog))
	assert.Equal(t, action.StatusRolledBack, engine.Result(good.ID).Status)
	assert.Nil(t, engine.Result("unknown"))

	summary := engine.Summary(context.Background())
	assert.Equal(t, []string{"scripted", "failing"}, summary.RegisteredExecutors)
	assert.Equal(t, 3, summary.TotalExecuted)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.DryRunByDefault)
	assert.Equal(t, 50, summary.MaxActionsPerRun)
}

func TestService_Listener(t *testing.T) {
	var seen []string
	engine := executor.New(extension.NewExecutors(nop.New()),
		executor.WithListener(func(anAction *action.ProposedAction, result *action.Result) {
			seen = append(seen, anAction.ID)
		}))
	anAction := approvedAction(action.TypeCustom, "Observed")

	_, err := engine.Execute(context.Background(), []*action.ProposedAction{anAction})
	assert.Nil(t, err)
	assert.Equal(t, []string{anAction.ID}, seen)
}
