// Package notify implements the executor for reminders and review flags.
// Sending a message is irrevocable, so the executor never advertises
// rollback.
package notify

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/structology/conv"
	"github.com/viant/x"

	"github.com/viant/actiongate/extension"
	"github.com/viant/actiongate/internal/clock"
	"github.com/viant/actiongate/model/action"
	"github.com/viant/actiongate/service/messaging"
)

const name = "notification"

var supportedTypes = []action.Type{
	action.TypeSendReminder,
	action.TypeFlagForReview,
}

// Input is the typed view over an action's parameters bag.
type Input struct {
	Recipients []string `json:"recipients"`
	Channel    string   `json:"channel"`
	Message    string   `json:"message"`
}

// Message is the outbound record placed on the delivery queue. Actual
// delivery (email, chat) is the host's responsibility.
type Message struct {
	ActionID   string   `json:"actionID"`
	Channel    string   `json:"channel"`
	Recipients []string `json:"recipients"`
	Body       string   `json:"body"`
}

// Service sends notifications and reminders.
type Service struct {
	converter *conv.Converter
	outbound  messaging.Queue[Message]
}

// Option customises the notification executor.
type Option func(*Service)

// WithOutbound attaches the delivery queue real runs publish to.
func WithOutbound(queue messaging.Queue[Message]) Option {
	return func(s *Service) { s.outbound = queue }
}

// New creates a notification executor.
func New(options ...Option) *Service {
	convOptions := conv.DefaultOptions()
	convOptions.ClonePointerData = true
	convOptions.IgnoreUnmapped = true
	convOptions.AccessUnexported = true
	ret := &Service{converter: conv.NewConverter(convOptions)}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Name returns the executor name.
func (s *Service) Name() string {
	return name
}

// InitTypes registers the executor input type for host introspection.
func (s *Service) InitTypes(types *extension.Types) {
	types.Register(x.NewType(reflect.TypeOf(Input{})))
}

// CanHandle claims notification action types and explicit overrides.
func (s *Service) CanHandle(anAction *action.ProposedAction) bool {
	if anAction.Executor == name {
		return true
	}
	for _, candidate := range supportedTypes {
		if anAction.Type == candidate {
			return true
		}
	}
	return false
}

// Validate checks the required parameters without side effects.
func (s *Service) Validate(_ context.Context, anAction *action.ProposedAction) (bool, string) {
	input, err := s.input(anAction)
	if err != nil {
		return false, err.Error()
	}
	if len(input.Recipients) == 0 && input.Channel == "" {
		return false, "missing required parameter: recipients or channel"
	}
	return true, ""
}

// Execute sends (or previews) the notification.
func (s *Service) Execute(ctx context.Context, anAction *action.ProposedAction, dryRun bool) (*action.Result, error) {
	input, err := s.input(anAction)
	if err != nil {
		return nil, err
	}
	channel := input.Channel
	if channel == "" {
		channel = "email"
	}
	body := input.Message
	if body == "" {
		body = anAction.Description
	}

	var summary string
	if dryRun {
		summary = fmt.Sprintf("Would send %v notification to %d recipient(s)", channel, len(input.Recipients))
	} else {
		summary = fmt.Sprintf("Sent %v notification to %d recipient(s)", channel, len(input.Recipients))
		if s.outbound != nil {
			outgoing := &Message{
				ActionID:   anAction.ID,
				Channel:    channel,
				Recipients: input.Recipients,
				Body:       body,
			}
			if err = s.outbound.Publish(ctx, outgoing); err != nil {
				return nil, fmt.Errorf("failed to queue %v notification: %w", channel, err)
			}
		}
	}

	finished := clock.Now()
	return &action.Result{
		ActionID: anAction.ID,
		Status:   action.StatusCompleted,
		Summary:  summary,
		Details: map[string]interface{}{
			"channel":    channel,
			"recipients": input.Recipients,
			"message":    truncate(body, 200),
		},
		DryRun:            dryRun,
		RollbackAvailable: false,
		StartedAt:         clock.Now(),
		FinishedAt:        &finished,
	}, nil
}

func (s *Service) input(anAction *action.ProposedAction) (*Input, error) {
	input := &Input{}
	if err := s.converter.Convert(anAction.Parameters, input); err != nil {
		return nil, fmt.Errorf("invalid notification parameters: %w", err)
	}
	return input, nil
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
