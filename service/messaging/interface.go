package messaging

import (
	"context"
)

// Queue is an abstract message queue for any payload type. The gate publishes
// notifications onto a queue; the host drains it and owns delivery.
type Queue[T any] interface {
	// Publish adds a new message with the supplied payload to the queue.
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue.
	Consume(ctx context.Context) (Message[T], error)
}

// Message is a single item retrieved from a queue.
type Message[T any] interface {
	// T returns the payload of this message.
	T() *T

	// Ack acknowledges successful processing.
	Ack() error

	// Nack indicates a processing failure; the implementation may retry or
	// dead-letter the message.
	Nack(err error) error
}
