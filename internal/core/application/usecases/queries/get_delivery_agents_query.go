// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/guard"
)

var ErrGetDeliveryAgentsQueryIsNotConstructed = errors.New(
	"GetDeliveryAgentsQuery must be created via NewGetDeliveryAgentsQuery constructor",
)

// GetDeliveryAgentsQuery retrieves the agent roster with each agent's
// current load. Used by the admin dashboard and by operators deciding on
// manual assignment.
type GetDeliveryAgentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryAgentsQuery creates a query for the full agent roster.
func NewGetDeliveryAgentsQuery() GetDeliveryAgentsQuery {
	return GetDeliveryAgentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryAgentsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryAgentsQueryIsNotConstructed)
}

// GetDeliveryAgentsQueryResponse is one roster row. IsAvailable folds the
// activity flag and the concurrent-load cap into a single answer to "can
// this agent take an order right now".
type GetDeliveryAgentsQueryResponse struct {
	ID               kernel.UUID
	UserID           kernel.UUID
	IsActive         bool
	Latitude         *float64
	Longitude        *float64
	ActiveDeliveries int
	IsAvailable      bool
}
