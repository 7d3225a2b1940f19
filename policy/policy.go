// Package policy provides an optional per-action-type autonomy layer that can
// be attached to a gate invocation via context. It is deliberately decoupled
// from the gate so that using it is entirely opt-in - callers that do not
// embed a Policy in their context keep the configured tier behaviour.
package policy

import (
	"context"
	"strings"
)

// Autonomy modes recognised by the approval gate.
const (
	ModeAuto = "auto" // tiered auto-approval as configured (default)
	ModeAsk  = "ask"  // hold every action for human approval
	ModeDeny = "deny" // hold every action; hosts typically reject the batch
)

// Policy narrows which action types remain eligible for auto-approval.
//
//   - Mode controls the high-level behaviour (auto / ask / deny).
//   - AllowList, when non-empty, limits auto-approval to the listed types.
//   - BlockList always wins: a listed type is never auto-approved.
//
// A nil *Policy means "apply configured tier rules" and is the zero-cost
// default.
type Policy struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// AllowsAuto reports whether an action of the supplied type may be
// auto-approved under this policy. Lists match the action type by exact,
// case-insensitive comparison.
func (p *Policy) AllowsAuto(actionType string) bool {
	if p == nil {
		return true
	}
	if p.Mode == ModeAsk || p.Mode == ModeDeny {
		return false
	}

	normalized := strings.ToLower(actionType)
	for _, blocked := range p.BlockList {
		if normalized == strings.ToLower(blocked) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, allowed := range p.AllowList {
		if normalized == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds the policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy, or nil when none was attached.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
