package ports

import (
	"context"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFound if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReadyWithoutDelivery retrieves orders in Ready status that have
	// no delivery yet. Used by the auto-assignment sweep.
	GetAllReadyWithoutDelivery(ctx context.Context) ([]*order.Order, error)
}
