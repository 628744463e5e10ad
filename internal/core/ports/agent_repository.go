package ports

import (
	"context"

	"bazaarlink/internal/core/domain/model/agent"
	"bazaarlink/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for agent aggregates.
type AgentRepository interface {
	// Update persists changes to an existing agent aggregate.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get retrieves an agent by its unique identifier.
	// Returns ObjectNotFound if no such agent exists.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetByUserID retrieves the agent profile behind a user account.
	// Returns ObjectNotFound if the user is not an agent.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error)

	// GetAllAvailable retrieves active agents carrying fewer than the
	// maximum number of concurrent deliveries, in registration order.
	GetAllAvailable(ctx context.Context) ([]*agent.Agent, error)
}
