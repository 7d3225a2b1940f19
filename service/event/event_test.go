package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	qmem "github.com/viant/actiongate/service/messaging/memory"
)

func TestPublisher(t *testing.T) {
	ctx := context.Background()
	queue := qmem.NewQueue[Event[string]](qmem.DefaultConfig())
	publisher := NewPublisher[string](queue)

	assert.Nil(t, publisher.Publish(ctx, New(TopicDecisionCreated, "decision-1")))
	assert.Nil(t, publisher.Publish(ctx, New(TopicActionExecuted, "result-1")))

	first, err := publisher.Consume(ctx)
	assert.Nil(t, err)
	assert.Equal(t, TopicDecisionCreated, first.Topic)
	assert.Equal(t, "decision-1", first.Data)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := publisher.Consume(ctx)
	assert.Nil(t, err)
	assert.Equal(t, TopicActionExecuted, second.Topic)
}
