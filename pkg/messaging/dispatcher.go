package messaging

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// HandlerFunc processes one message. A returned error is logged and the
// message dropped.
type HandlerFunc func(ctx context.Context, msg Message) error

// Dispatcher routes subscribed messages to handlers by message type.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
	logger   *zerolog.Logger
}

func NewDispatcher(logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]HandlerFunc), logger: logger}
}

func (d *Dispatcher) Handle(eventType string, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], h)
}

// Dispatch runs every handler registered for msg.Type.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	d.mu.RLock()
	handlers := d.handlers[msg.Type]
	d.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, msg); err != nil {
			d.logger.Error().Err(err).
				Str("event_id", msg.ID.String()).
				Str("event_type", msg.Type).
				Msg("event handler failed")
		}
	}
}

// Run subscribes to channel and dispatches until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, broker Broker, channel string) error {
	messages, err := broker.Subscribe(ctx, channel)
	if err != nil {
		return err
	}
	for msg := range messages {
		d.Dispatch(ctx, msg)
	}
	return nil
}
