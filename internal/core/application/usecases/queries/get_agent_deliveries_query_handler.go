package queries

import (
	"context"

	"bazaarlink/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgentDeliveriesQueryHandler retrieves an agent's active deliveries,
// joined with the order number the agent quotes to the customer at the
// door. The caller is resolved from user account to agent inside the query,
// so an id that is not an agent simply reads as an empty list.
type GetAgentDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentDeliveriesQueryHandler creates a handler for agent delivery
// queries.
func NewGetAgentDeliveriesQueryHandler(db *gorm.DB) GetAgentDeliveriesQueryHandler {
	return GetAgentDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Results are ordered oldest first: the delivery
// the agent has carried longest is the one to finish next.
func (h GetAgentDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAgentDeliveriesQuery,
) ([]GetAgentDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetAgentDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.order_id,
			o.order_number,
			d.status,
			d.pickup_latitude,
			d.pickup_longitude,
			d.drop_latitude,
			d.drop_longitude,
			d.latitude,
			d.longitude,
			d.assigned_at
		FROM deliveries d
		JOIN delivery_agents a ON a.id = d.agent_id
		JOIN orders o ON o.id = d.order_id
		WHERE a.user_id = ?
			AND d.status IN ('PENDING', 'PICKED', 'OUT_FOR_DELIVERY')
		ORDER BY d.assigned_at
	`, query.AgentUserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetAgentDeliveriesQueryResponse
		var id, orderID uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&row.OrderNumber,
			&row.Status,
			&row.PickupLatitude,
			&row.PickupLongitude,
			&row.DropLatitude,
			&row.DropLongitude,
			&row.Latitude,
			&row.Longitude,
			&row.AssignedAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = deliveryID

		rowOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		row.OrderID = rowOrderID

		deliveries = append(deliveries, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
