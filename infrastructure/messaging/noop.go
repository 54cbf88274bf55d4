package messaging

import (
	"context"

	"compass/application/ports"
	"compass/domain/events"
)

// NoopPublisher discards events. Used in local development where no event
// bus is configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops everything
func NewNoopPublisher() ports.EventPublisher {
	return NoopPublisher{}
}

// Publish implements EventPublisher
func (NoopPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return nil
}

// PublishBatch implements EventPublisher
func (NoopPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	return nil
}
