package queries

import (
	"context"

	"bazaarlink/internal/core/domain/model/agent"
	"bazaarlink/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryAgentsQueryHandler retrieves the agent roster with per-agent
// active-delivery counts. Uses direct SQL for optimal read performance in
// the CQRS pattern; the count is computed in the database rather than by
// loading every delivery.
type GetDeliveryAgentsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryAgentsQueryHandler creates a handler for agent roster
// queries.
func NewGetDeliveryAgentsQueryHandler(db *gorm.DB) GetDeliveryAgentsQueryHandler {
	return GetDeliveryAgentsQueryHandler{db: db}
}

// Handle executes the roster query. Rows are sorted by registration time so
// the roster is stable between refreshes.
func (h GetDeliveryAgentsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryAgentsQuery,
) ([]GetDeliveryAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agents := make([]GetDeliveryAgentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.user_id,
			a.is_active,
			a.latitude,
			a.longitude,
			COUNT(d.id) AS active_deliveries
		FROM delivery_agents a
		LEFT JOIN deliveries d
			ON d.agent_id = a.id
			AND d.status IN ('PENDING', 'PICKED', 'OUT_FOR_DELIVERY')
		GROUP BY a.id, a.user_id, a.is_active, a.latitude, a.longitude, a.created_at
		ORDER BY a.created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetDeliveryAgentsQueryResponse
		var id, userID uuid.UUID

		err = rows.Scan(
			&id,
			&userID,
			&row.IsActive,
			&row.Latitude,
			&row.Longitude,
			&row.ActiveDeliveries,
		)
		if err != nil {
			return nil, err
		}

		agentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = agentID

		agentUserID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}
		row.UserID = agentUserID

		row.IsAvailable = row.IsActive && row.ActiveDeliveries < agent.MaxActiveDeliveries
		agents = append(agents, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
