package ports

import (
	"context"

	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates. One delivery exists per order; Add surfaces a Conflict error
// when that uniqueness is violated.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage. Returns Conflict if
	// a delivery already exists for the same order.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by its unique identifier.
	// Returns ObjectNotFound if no such delivery exists.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetOwned retrieves a delivery only if it belongs to the given agent.
	// Returns ObjectNotFound both when the delivery does not exist and when
	// it belongs to a different agent, so callers cannot probe for foreign
	// delivery identifiers.
	GetOwned(ctx context.Context, id, agentID kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery for an order, if any.
	// Returns ObjectNotFound when the order has no delivery.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// GetAllActiveByAgent retrieves the agent's not-yet-delivered trips.
	GetAllActiveByAgent(ctx context.Context, agentID kernel.UUID) ([]*delivery.Delivery, error)

	// CountActiveByAgent returns how many not-yet-delivered trips the agent
	// carries. Used for the concurrent-load cap.
	CountActiveByAgent(ctx context.Context, agentID kernel.UUID) (int, error)
}
