package actiongate

import (
	"context"

	"github.com/viant/actiongate/extension"
	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/model/types"
	"github.com/viant/actiongate/service/action/categorize"
	"github.com/viant/actiongate/service/action/nop"
	"github.com/viant/actiongate/service/action/notify"
	"github.com/viant/actiongate/service/action/report"
	"github.com/viant/actiongate/service/action/subscription"
	"github.com/viant/actiongate/service/approval"
	gatemem "github.com/viant/actiongate/service/approval/memory"
	"github.com/viant/actiongate/service/executor"
)

// Service is the façade over the proposed-action lifecycle: propose actions
// through the approval gate, approve or reject what is held, execute what is
// approved and roll back what supports it.
type Service struct {
	config         *Config
	gate           approval.Service
	gateOptions    []gatemem.Option
	executors      *extension.Executors
	engine         executor.Service
	extraExecutors []types.Executor
	engineOptions  []executor.Option
}

// New creates the service with the built-in executor set registered in
// front of the guaranteed log-only fallback.
func New(options ...Option) *Service {
	ret := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(ret)
	}
	ret.init()
	return ret
}

// NewFromConfig loads configuration from the URL and creates the service.
func NewFromConfig(ctx context.Context, URL string, options ...Option) (*Service, error) {
	config, err := LoadConfig(ctx, URL)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithConfig(config)}, options...)...), nil
}

func (s *Service) init() {
	if s.gate == nil {
		s.gate = gatemem.New(s.gateConfigOptions()...)
	}

	s.executors = extension.NewExecutors(nop.New())
	s.executors.Register(categorize.New())
	s.executors.Register(notify.New())
	s.executors.Register(report.New(report.WithBaseURL(s.config.Reports.BaseURL)))
	s.executors.Register(subscription.New())
	for _, anExecutor := range s.extraExecutors {
		s.executors.Register(anExecutor)
	}

	engineOptions := []executor.Option{executor.WithGate(s.gate)}
	if s.config.Engine.MaxActionsPerRun > 0 {
		engineOptions = append(engineOptions, executor.WithMaxActionsPerRun(s.config.Engine.MaxActionsPerRun))
	}
	if s.config.Engine.DryRunByDefault != nil {
		engineOptions = append(engineOptions, executor.WithDryRunDefault(*s.config.Engine.DryRunByDefault))
	}
	engineOptions = append(engineOptions, s.engineOptions...)
	s.engine = executor.New(s.executors, engineOptions...)
}

func (s *Service) gateConfigOptions() []gatemem.Option {
	gateConfig := s.config.Gate
	var options []gatemem.Option
	if gateConfig.Disabled {
		options = append(options, gatemem.WithApprovalDisabled())
	}
	if gateConfig.AutoApproveGreen != nil {
		options = append(options, gatemem.WithAutoApproveGreen(*gateConfig.AutoApproveGreen))
	}
	if gateConfig.AutoApproveYellow != nil {
		options = append(options, gatemem.WithAutoApproveYellow(*gateConfig.AutoApproveYellow))
	}
	if len(gateConfig.Rules) > 0 {
		options = append(options, gatemem.WithRules(gateConfig.Rules...))
	}
	return append(options, s.gateOptions...)
}

// Propose routes a batch of proposed actions through the approval gate.
func (s *Service) Propose(ctx context.Context, actions ...*action.ProposedAction) (autoApproved, needsApproval []*action.ProposedAction, err error) {
	return s.gate.Process(ctx, actions)
}

// Approve approves held actions.
func (s *Service) Approve(ctx context.Context, ids []string, approvedBy, reason string, modifications map[string]map[string]interface{}) ([]*action.ProposedAction, error) {
	return s.gate.Approve(ctx, ids, approvedBy, reason, modifications)
}

// Reject rejects held actions.
func (s *Service) Reject(ctx context.Context, ids []string, rejectedBy, reason string) ([]*action.ProposedAction, error) {
	return s.gate.Reject(ctx, ids, rejectedBy, reason)
}

// Pending lists actions waiting for approval.
func (s *Service) Pending(ctx context.Context) ([]*action.ProposedAction, error) {
	return s.gate.Pending(ctx)
}

// Execute runs approved actions through the engine.
func (s *Service) Execute(ctx context.Context, actions []*action.ProposedAction, options ...executor.RunOption) ([]*action.Result, error) {
	return s.engine.Execute(ctx, actions, options...)
}

// Rollback compensates previously executed actions.
func (s *Service) Rollback(ctx context.Context, actionIDs []string) ([]*action.Result, error) {
	return s.engine.Rollback(ctx, actionIDs)
}

// Summary reports the engine's operational state.
func (s *Service) Summary(ctx context.Context) *executor.Summary {
	return s.engine.Summary(ctx)
}

// RegisterExecutor adds an executor to the registry at runtime.
func (s *Service) RegisterExecutor(anExecutor types.Executor) {
	s.executors.Register(anExecutor)
}

// Gate exposes the approval gate.
func (s *Service) Gate() approval.Service {
	return s.gate
}

// Engine exposes the execution engine.
func (s *Service) Engine() executor.Service {
	return s.engine
}

// Executors exposes the executor registry.
func (s *Service) Executors() *extension.Executors {
	return s.executors
}
