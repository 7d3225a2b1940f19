package actiongate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/service/executor"
)

func auditBatch() []*action.ProposedAction {
	return []*action.ProposedAction{
		action.New(action.TypeCategorizeTransaction, "Recategorize SaaS spend",
			action.WithEstimatedSavings(100),
			action.WithParameters(map[string]interface{}{
				"transactionIds":     []string{"t1", "t2"},
				"category":           "Software",
				"previousCategories": map[string]string{"t1": "Misc", "t2": "Misc"},
			})),
		action.New(action.TypeSendReminder, "Remind overdue client",
			action.WithEstimatedSavings(500),
			action.WithParameters(map[string]interface{}{"recipients": []string{"ap@client.com"}})),
		action.New(action.TypeCancelSubscription, "Cancel unused seats",
			action.WithEstimatedSavings(5000),
			action.WithParameters(map[string]interface{}{"vendor": "Acme SaaS", "subscriptionId": "sub-77"})),
		action.New(action.TypeChangePayroll, "Correct payroll rate",
			action.WithEstimatedSavings(50000)),
	}
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	srv := New()
	batch := auditBatch()

	// green and yellow auto-approve, red and critical are held
	autoApproved, held, err := srv.Propose(ctx, batch...)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(autoApproved))
	assert.Equal(t, 2, len(held))

	pending, err := srv.Pending(ctx)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(pending))

	// a human clears the red action and turns down the critical one
	approved, err := srv.Approve(ctx, []string{batch[2].ID}, "cfo@acme.com", "verified usage report", nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(approved))
	rejected, err := srv.Reject(ctx, []string{batch[3].ID}, "cfo@acme.com", "needs HR sign-off")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(rejected))

	// real run over the whole batch; the rejected action is skipped
	results, err := srv.Execute(ctx, batch, executor.WithDryRun(false))
	assert.Nil(t, err)
	assert.Equal(t, 3, len(results))
	for _, result := range results {
		assert.Equal(t, action.StatusCompleted, result.Status, result.Summary)
		assert.False(t, result.DryRun)
	}
	assert.Contains(t, results[0].Summary, "Categorized 2 transaction(s)")
	assert.Contains(t, results[1].Summary, "Sent email notification")
	assert.Contains(t, results[2].Summary, "Cancelled Acme SaaS subscription")

	// only the categorization recorded enough to be undone
	undone, err := srv.Rollback(ctx, []string{batch[0].ID, batch[2].ID})
	assert.Nil(t, err)
	assert.Equal(t, action.StatusRolledBack, undone[0].Status)
	assert.Equal(t, executor.ErrRollbackNotAvailable.Error(), undone[1].Error)
	assert.Equal(t, action.StatusRolledBack, batch[0].Status)

	summary := srv.Summary(ctx)
	assert.Equal(t, []string{"categorization", "notification", "reporting", "subscription"}, summary.RegisteredExecutors)
	assert.Equal(t, 4, summary.TotalExecuted)
	assert.Equal(t, 0, summary.PendingActions)
}

func TestService_DryRunByDefault(t *testing.T) {
	ctx := context.Background()
	srv := New()
	anAction := action.New(action.TypeCategorizeTransaction, "Preview only",
		action.WithParameters(map[string]interface{}{
			"transactionIds": []string{"t1"},
			"category":       "Software",
		}))

	autoApproved, _, err := srv.Propose(ctx, anAction)
	assert.Nil(t, err)

	results, err := srv.Execute(ctx, autoApproved)
	assert.Nil(t, err)
	assert.True(t, results[0].DryRun)
	assert.Contains(t, results[0].Summary, "Would categorize")
}

func TestService_FromConfig(t *testing.T) {
	ctx := context.Background()
	disabledYellow := false
	srv := New(WithConfig(&Config{
		Gate:   GateConfig{AutoApproveYellow: &disabledYellow},
		Engine: EngineConfig{MaxActionsPerRun: 1},
	}))

	batch := auditBatch()
	autoApproved, held, err := srv.Propose(ctx, batch...)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(autoApproved)) // only green clears the gate
	assert.Equal(t, 3, len(held))

	summary := srv.Summary(ctx)
	assert.Equal(t, 1, summary.MaxActionsPerRun)
	assert.Equal(t, 3, summary.PendingActions)
}

func TestService_RegisterExecutor(t *testing.T) {
	ctx := context.Background()
	srv := New()
	srv.RegisterExecutor(&customExecutor{})

	anAction := action.New(action.TypeCustom, "Handled by plug-in")
	_ = anAction.SetStatus(action.StatusApproved)
	results, err := srv.Execute(ctx, []*action.ProposedAction{anAction})
	assert.Nil(t, err)
	assert.Equal(t, "handled by plug-in", results[0].Summary)
	assert.Equal(t, srv.Executors().Lookup("plug-in"), srv.Executors().Match(anAction))
}

type customExecutor struct{}

func (e *customExecutor) Name() string                            { return "plug-in" }
func (e *customExecutor) CanHandle(a *action.ProposedAction) bool { return a.Type == action.TypeCustom }
func (e *customExecutor) Validate(_ context.Context, _ *action.ProposedAction) (bool, string) {
	return true, ""
}

func (e *customExecutor) Execute(_ context.Context, anAction *action.ProposedAction, dryRun bool) (*action.Result, error) {
	return &action.Result{
		ActionID: anAction.ID,
		Status:   action.StatusCompleted,
		Summary:  "handled by plug-in",
		DryRun:   dryRun,
	}, nil
}
