package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	ID string
}

func TestQueue_PublishConsume(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[payload](DefaultConfig())

	assert.Nil(t, queue.Publish(ctx, &payload{ID: "p1"}))
	assert.Nil(t, queue.Publish(ctx, &payload{ID: "p2"}))
	assert.Equal(t, 2, queue.Size())

	msg, err := queue.Consume(ctx)
	assert.Nil(t, err)
	assert.Equal(t, "p1", msg.T().ID)
	assert.Nil(t, msg.Ack())
	assert.NotNil(t, msg.Ack()) // double ack is rejected
}

func TestQueue_TryPublish(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[payload](Config{MaxRetries: 1, DeadLetter: true, QueueBuffer: 2})

	assert.Nil(t, queue.TryPublish(ctx, &payload{ID: "p1"}))
	assert.Nil(t, queue.TryPublish(ctx, &payload{ID: "p2"}))

	// a full buffer returns immediately instead of blocking
	err := queue.TryPublish(ctx, &payload{ID: "p3"})
	assert.Equal(t, ErrQueueFull, err)
	assert.Equal(t, 2, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueue_ConsumeCancelled(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	msg, err := queue.Consume(ctx)
	assert.Nil(t, msg)
	assert.NotNil(t, err)
}

func TestQueue_NackRedelivers(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[payload](Config{MaxRetries: 2, RetryDelay: time.Millisecond, DeadLetter: true, QueueBuffer: 10})

	assert.Nil(t, queue.Publish(ctx, &payload{ID: "flaky"}))
	msg, err := queue.Consume(ctx)
	assert.Nil(t, err)
	assert.Nil(t, msg.Nack(errors.New("transient")))

	redelivery, err := queue.Consume(ctx)
	assert.Nil(t, err)
	assert.Equal(t, "flaky", redelivery.T().ID)
	assert.Nil(t, redelivery.Ack())
}

func TestQueue_DeadLetter(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[payload](Config{MaxRetries: 1, RetryDelay: time.Millisecond, DeadLetter: true, QueueBuffer: 10})

	assert.Nil(t, queue.Publish(ctx, &payload{ID: "poison"}))
	for attempt := 0; attempt < 2; attempt++ {
		msg, err := queue.Consume(ctx)
		assert.Nil(t, err)
		assert.Nil(t, msg.Nack(errors.New("permanent")))
	}

	// retries are exhausted, the message lands in the DLQ
	assert.Equal(t, 1, queue.DLQSize())
	assert.Equal(t, 0, queue.Size())
}
