package ports

import (
	"context"

	"bazaarlink/internal/core/domain/events"
)

// EventPublisher hands domain events to the message broker. Publish is
// called after the owning transaction commits; a failed publish is logged
// and dropped, never rolled back into the business operation.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
