package actiongate

import (
	"github.com/viant/actiongate/model/types"
	"github.com/viant/actiongate/service/approval"
	gatemem "github.com/viant/actiongate/service/approval/memory"
	"github.com/viant/actiongate/service/executor"
)

// Option customises the service.
type Option func(*Service)

// WithConfig supplies the full configuration; unset fields keep their
// defaults.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithGate substitutes the approval gate, e.g. one backed by a durable
// pending-action store. Gate configuration from Config is ignored when a gate
// is supplied directly.
func WithGate(gate approval.Service) Option {
	return func(s *Service) { s.gate = gate }
}

// WithGateOptions appends options to the default in-memory gate. Ignored when
// WithGate is used.
func WithGateOptions(options ...gatemem.Option) Option {
	return func(s *Service) { s.gateOptions = append(s.gateOptions, options...) }
}

// WithExecutors registers additional executors after the built-in set, in the
// order given.
func WithExecutors(executors ...types.Executor) Option {
	return func(s *Service) { s.extraExecutors = append(s.extraExecutors, executors...) }
}

// WithEngineOptions appends options to the execution engine.
func WithEngineOptions(options ...executor.Option) Option {
	return func(s *Service) { s.engineOptions = append(s.engineOptions, options...) }
}
