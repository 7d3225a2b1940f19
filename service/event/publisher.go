package event

import (
	"context"

	"github.com/viant/actiongate/service/messaging"
)

// Publisher fans lifecycle events out onto a messaging queue. Each component
// owns at most one event stream, so a plain typed publisher suffices.
type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

// NewPublisher creates a publisher over the supplied queue.
func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// Publish places the event on the queue.
func (p *Publisher[T]) Publish(ctx context.Context, anEvent *Event[T]) error {
	return p.queue.Publish(ctx, anEvent)
}

// Consume retrieves and acknowledges the next event.
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
