package port

import "context"

// EventConsumer is an interface to define an event consumer (kafka, nats, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// EventPublisher is an interface to publish domain events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}
