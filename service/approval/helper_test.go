package approval_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/viant/actiongate/internal/clock"
	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/service/approval"
	"github.com/viant/actiongate/service/approval/memory"
)

func TestExpireStale(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock.NowFunc = func() time.Time { return base }
	defer func() { clock.NowFunc = time.Now }()

	ctx := context.Background()
	gate := memory.New(memory.WithRules(
		&approval.Rule{Level: action.LevelRed, TimeoutHours: 24},
	))

	stale := action.New(action.TypeCancelSubscription, "Cancel unused seats")
	unbounded := action.New(action.TypeChangePayroll, "Correct payroll rate") // critical has no rule
	_, _, err := gate.Process(ctx, []*action.ProposedAction{stale, unbounded})
	assert.Nil(t, err)

	// inside the window nothing expires
	expired, err := approval.ExpireStale(ctx, gate, base.Add(23*time.Hour))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(expired))

	// past the window the red action is rejected by the timeout actor
	expired, err = approval.ExpireStale(ctx, gate, base.Add(25*time.Hour))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(expired))
	assert.Equal(t, stale.ID, expired[0].ID)
	assert.Equal(t, action.StatusRejected, stale.Status)
	assert.Equal(t, action.StatusProposed, unbounded.Status)

	decisions := gate.Decisions()
	assert.Equal(t, 1, len(decisions))
	assert.Equal(t, approval.TimeoutActor, decisions[0].DecidedBy)
	assert.Contains(t, decisions[0].Reason, "24h")
}

func TestPartialApprovals(t *testing.T) {
	anAction := action.New(action.TypeChangePayroll, "Correct payroll rate")
	assert.Equal(t, 0, len(approval.PartialApprovals(anAction)))

	approvals := approval.RecordPartialApproval(anAction, "cfo@acme.com")
	assert.Equal(t, []string{"cfo@acme.com"}, approvals)

	// duplicates collapse
	approvals = approval.RecordPartialApproval(anAction, "cfo@acme.com")
	assert.Equal(t, []string{"cfo@acme.com"}, approvals)

	approvals = approval.RecordPartialApproval(anAction, "ceo@acme.com")
	assert.Equal(t, []string{"cfo@acme.com", "ceo@acme.com"}, approvals)

	// survives a JSON round trip where the slice decodes as []interface{}
	anAction.Metadata["approvals"] = []interface{}{"cfo@acme.com", "ceo@acme.com"}
	assert.Equal(t, []string{"cfo@acme.com", "ceo@acme.com"}, approval.PartialApprovals(anAction))
}
