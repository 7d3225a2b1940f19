package action

import (
	"fmt"
	"time"

	"github.com/viant/actiongate/internal/clock"
	"github.com/viant/actiongate/internal/idgen"
)

// Step describes one part of a proposed action. Steps are purely
// informational: they communicate intent to a human reviewer and to the
// executor's internal logic, the engine never runs them individually.
type Step struct {
	Order       int    `json:"order" yaml:"order"`
	Description string `json:"description" yaml:"description"`
	Reversible  bool   `json:"reversible" yaml:"reversible"`
}

// ProposedAction is a candidate operation produced by the analysis layer. It
// is owned by whichever component currently holds it (the approval gate while
// pending, the engine while executing) and is mutated in place - never copied
// destructively.
type ProposedAction struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description,omitempty"`
	Type             Type                   `json:"type"`
	Level            ApprovalLevel          `json:"level"`
	Status           Status                 `json:"status"`
	Steps            []Step                 `json:"steps,omitempty"`
	Parameters       map[string]interface{} `json:"parameters,omitempty"`
	EstimatedSavings float64                `json:"estimatedSavings"`
	Confidence       float64                `json:"confidence,omitempty"`
	FindingIDs       []string               `json:"findingIDs,omitempty"`
	Executor         string                 `json:"executor,omitempty"` // explicit executor-name override
	CreatedAt        time.Time              `json:"createdAt"`
	ApprovedAt       *time.Time             `json:"approvedAt,omitempty"`
	ExecutedAt       *time.Time             `json:"executedAt,omitempty"`
	CompletedAt      *time.Time             `json:"completedAt,omitempty"`
	ApprovedBy       string                 `json:"approvedBy,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

// IsActionable reports whether the action may be submitted for execution.
func (a *ProposedAction) IsActionable() bool {
	return a.Status == StatusApproved
}

// IsTerminal reports whether the action reached a terminal status.
func (a *ProposedAction) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// SetStatus moves the action to the next status, guarding against illegal
// transitions. The gate and the engine only ever request legal moves; the
// guard protects host code from resetting a terminal action.
func (a *ProposedAction) SetStatus(next Status) error {
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("illegal status transition for action %v: %v -> %v", a.ID, a.Status, next)
	}
	a.Status = next
	return nil
}

// EffectiveLevel returns the explicit level when set, otherwise the default
// for the action type.
func (a *ProposedAction) EffectiveLevel() ApprovalLevel {
	if a.Level != "" {
		return a.Level
	}
	return DefaultLevel(a.Type)
}

// EnsureMetadata lazily initialises the metadata bag.
func (a *ProposedAction) EnsureMetadata() map[string]interface{} {
	if a.Metadata == nil {
		a.Metadata = map[string]interface{}{}
	}
	return a.Metadata
}

// Option customises a newly created ProposedAction.
type Option func(*ProposedAction)

// WithID overrides the generated identifier.
func WithID(id string) Option {
	return func(a *ProposedAction) { a.ID = id }
}

// WithDescription sets the action description.
func WithDescription(description string) Option {
	return func(a *ProposedAction) { a.Description = description }
}

// WithLevel overrides the default approval level for the action type.
func WithLevel(level ApprovalLevel) Option {
	return func(a *ProposedAction) { a.Level = level }
}

// WithSteps sets the descriptive steps.
func WithSteps(steps ...Step) Option {
	return func(a *ProposedAction) { a.Steps = steps }
}

// WithParameters sets the free-form parameters bag consumed by executors.
func WithParameters(parameters map[string]interface{}) Option {
	return func(a *ProposedAction) { a.Parameters = parameters }
}

// WithEstimatedSavings sets the estimated savings in the reporting currency.
func WithEstimatedSavings(savings float64) Option {
	return func(a *ProposedAction) { a.EstimatedSavings = savings }
}

// WithConfidence sets the producing detector's confidence.
func WithConfidence(confidence float64) Option {
	return func(a *ProposedAction) { a.Confidence = confidence }
}

// WithFindingIDs back-references the findings this action originates from.
func WithFindingIDs(ids ...string) Option {
	return func(a *ProposedAction) { a.FindingIDs = ids }
}

// WithExecutor pins the action to a named executor regardless of type match.
func WithExecutor(name string) Option {
	return func(a *ProposedAction) { a.Executor = name }
}

// New creates a ProposedAction in StatusProposed with a generated id and the
// default approval level for its type.
func New(actionType Type, title string, options ...Option) *ProposedAction {
	ret := &ProposedAction{
		ID:         idgen.New(),
		Title:      title,
		Type:       actionType,
		Level:      DefaultLevel(actionType),
		Status:     StatusProposed,
		Parameters: map[string]interface{}{},
		Metadata:   map[string]interface{}{},
		CreatedAt:  clock.Now(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}
