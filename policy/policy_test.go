package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_AllowsAuto(t *testing.T) {
	testCases := []struct {
		description string
		policy      *Policy
		actionType  string
		expect      bool
	}{
		{description: "nil policy allows everything", policy: nil, actionType: "tag_expense", expect: true},
		{description: "ask mode holds everything", policy: &Policy{Mode: ModeAsk}, actionType: "tag_expense", expect: false},
		{description: "deny mode holds everything", policy: &Policy{Mode: ModeDeny}, actionType: "tag_expense", expect: false},
		{description: "block list wins", policy: &Policy{BlockList: []string{"tag_expense"}}, actionType: "tag_expense", expect: false},
		{description: "block list is case insensitive", policy: &Policy{BlockList: []string{"Tag_Expense"}}, actionType: "tag_expense", expect: false},
		{description: "allow list admits listed types", policy: &Policy{AllowList: []string{"tag_expense"}}, actionType: "tag_expense", expect: true},
		{description: "allow list excludes unlisted types", policy: &Policy{AllowList: []string{"tag_expense"}}, actionType: "send_reminder", expect: false},
		{description: "block beats allow", policy: &Policy{AllowList: []string{"tag_expense"}, BlockList: []string{"tag_expense"}}, actionType: "tag_expense", expect: false},
		{description: "empty lists allow everything", policy: &Policy{Mode: ModeAuto}, actionType: "tag_expense", expect: true},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.policy.AllowsAuto(testCase.actionType), testCase.description)
	}
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	embedded := &Policy{Mode: ModeAsk}
	ctx := WithPolicy(context.Background(), embedded)
	assert.Equal(t, embedded, FromContext(ctx))
}
