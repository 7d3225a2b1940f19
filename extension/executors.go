package extension

import (
	"sync"

	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/model/types"
	"github.com/viant/x"
)

// DataTypeIniter lets an executor register its typed input/output structures
// when it joins the registry.
type DataTypeIniter interface {
	InitTypes(types *Types)
}

// Executors keeps the registered executor set in registration order together
// with a guaranteed no-op fallback. Selection is capability based: the first
// registered executor claiming an action wins; when none claims it the
// fallback is used so the pipeline never drops an action for lack of a
// handler.
type Executors struct {
	types      *Types
	registered []types.Executor
	byName     map[string]types.Executor
	fallback   types.Executor
	mux        sync.RWMutex
}

// Types returns the registry of executor data types.
func (e *Executors) Types() *Types {
	return e.types
}

// Register appends an executor to the registry.
func (e *Executors) Register(executor types.Executor) {
	e.mux.Lock()
	defer e.mux.Unlock()

	if typer, ok := executor.(DataTypeIniter); ok {
		typer.InitTypes(e.types)
	}
	e.registered = append(e.registered, executor)
	e.byName[executor.Name()] = executor
}

// Lookup returns a registered executor by name, or nil.
func (e *Executors) Lookup(name string) types.Executor {
	e.mux.RLock()
	defer e.mux.RUnlock()
	return e.byName[name]
}

// Match returns the first registered executor claiming the action, falling
// back to the guaranteed no-op executor.
func (e *Executors) Match(anAction *action.ProposedAction) types.Executor {
	e.mux.RLock()
	defer e.mux.RUnlock()
	for _, candidate := range e.registered {
		if candidate.CanHandle(anAction) {
			return candidate
		}
	}
	return e.fallback
}

// Fallback returns the no-op fallback executor.
func (e *Executors) Fallback() types.Executor {
	return e.fallback
}

// Names lists registered executor names in registration order.
func (e *Executors) Names() []string {
	e.mux.RLock()
	defer e.mux.RUnlock()
	ret := make([]string, 0, len(e.registered))
	for _, executor := range e.registered {
		ret = append(ret, executor.Name())
	}
	return ret
}

// NewExecutors creates an executor registry with the supplied fallback.
func NewExecutors(fallback types.Executor, goTypes ...*x.Type) *Executors {
	ret := &Executors{
		types:    NewTypes(),
		byName:   make(map[string]types.Executor),
		fallback: fallback,
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}
