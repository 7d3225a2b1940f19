package executor

import (
	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/service/approval"
	"github.com/viant/actiongate/service/dao"
	"github.com/viant/actiongate/service/event"
)

// Option customises the execution engine.
type Option func(*service)

// WithGate attaches the approval gate, used by Summary to report the pending
// count. The engine never mutates gate state.
func WithGate(gate approval.Service) Option {
	return func(s *service) { s.gate = gate }
}

// WithMaxActionsPerRun caps how many approved actions one Execute call
// processes. Excess actions are left untouched for the caller to resubmit.
func WithMaxActionsPerRun(limit int) Option {
	return func(s *service) {
		if limit > 0 {
			s.maxActionsPerRun = limit
		}
	}
}

// WithDryRunDefault sets the engine-wide dry-run default, overridable per
// Execute call via WithDryRun.
func WithDryRunDefault(dryRun bool) Option {
	return func(s *service) { s.dryRunByDefault = dryRun }
}

// WithListener sets the per-result callback.
func WithListener(listener Listener) Option {
	return func(s *service) { s.listener = listener }
}

// WithResultDAO substitutes the latest-result index, e.g. with a durable
// store so rollback survives a restart. The append-only execution log stays
// in memory either way.
func WithResultDAO(records dao.Service[string, Record]) Option {
	return func(s *service) { s.records = records }
}

// WithEventPublisher attaches a publisher receiving every execution and
// rollback result as an event.
func WithEventPublisher(events *event.Publisher[*action.Result]) Option {
	return func(s *service) { s.events = events }
}

// RunOption customises a single Execute call.
type RunOption func(*runOptions)

type runOptions struct {
	dryRun *bool
}

func newRunOptions(options []RunOption) *runOptions {
	ret := &runOptions{}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// WithDryRun overrides the engine's dry-run default for one call.
func WithDryRun(dryRun bool) RunOption {
	return func(o *runOptions) { o.dryRun = &dryRun }
}
