package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanBroker struct {
	messages chan Message
}

func (b *chanBroker) Publish(ctx context.Context, channel string, msg Message) error {
	b.messages <- msg
	return nil
}

func (b *chanBroker) Subscribe(ctx context.Context, channel string) (<-chan Message, error) {
	return b.messages, nil
}

func (b *chanBroker) Close() error { return nil }

func TestDispatcherRoutesByType(t *testing.T) {
	logger := zerolog.Nop()
	d := NewDispatcher(&logger)

	var created, deleted []uuid.UUID
	d.Handle("appointment.created", func(ctx context.Context, msg Message) error {
		created = append(created, msg.ID)
		return errors.New("handler errors are logged, not fatal")
	})
	d.Handle("appointment.created", func(ctx context.Context, msg Message) error {
		created = append(created, msg.ID)
		return nil
	})
	d.Handle("appointment.deleted", func(ctx context.Context, msg Message) error {
		deleted = append(deleted, msg.ID)
		return nil
	})

	broker := &chanBroker{messages: make(chan Message, 3)}
	first := Message{ID: uuid.New(), Type: "appointment.created"}
	second := Message{ID: uuid.New(), Type: "attendance.created"}
	third := Message{ID: uuid.New(), Type: "appointment.deleted"}
	for _, m := range []Message{first, second, third} {
		require.NoError(t, broker.Publish(context.Background(), "events", m))
	}
	close(broker.messages)

	require.NoError(t, d.Run(context.Background(), broker, "events"))
	assert.Equal(t, []uuid.UUID{first.ID, first.ID}, created)
	assert.Equal(t, []uuid.UUID{third.ID}, deleted)
}
