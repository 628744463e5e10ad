package queries

import (
	"errors"
	"time"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/guard"
)

var ErrGetAgentDeliveriesQueryIsNotConstructed = errors.New(
	"GetAgentDeliveriesQuery must be created via NewGetAgentDeliveriesQuery constructor",
)

// GetAgentDeliveriesQuery retrieves the active deliveries of the agent
// behind a user account. This backs the agent's "my deliveries" screen, so
// the caller identifies itself by user id, same as the write operations.
type GetAgentDeliveriesQuery struct {
	agentUserID kernel.UUID
	guard       guard.ConstructorGuard
}

// NewGetAgentDeliveriesQuery creates a query for one agent's active
// deliveries.
func NewGetAgentDeliveriesQuery(agentUserID kernel.UUID) (GetAgentDeliveriesQuery, error) {
	if err := agentUserID.Validate(); err != nil {
		return GetAgentDeliveriesQuery{}, err
	}

	return GetAgentDeliveriesQuery{
		agentUserID: agentUserID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// AgentUserID returns the calling agent's user account id.
func (q GetAgentDeliveriesQuery) AgentUserID() kernel.UUID {
	return q.agentUserID
}

// Validate ensures the query was created through the constructor.
func (q GetAgentDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentDeliveriesQueryIsNotConstructed)
}

// GetAgentDeliveriesQueryResponse is one active delivery as the agent's app
// shows it: where to pick up, where to drop off, and the last position the
// agent reported.
type GetAgentDeliveriesQueryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	OrderNumber     string
	Status          string
	PickupLatitude  float64
	PickupLongitude float64
	DropLatitude    float64
	DropLongitude   float64
	Latitude        *float64
	Longitude       *float64
	AssignedAt      time.Time
}
