package commands

import (
	"errors"

	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand advances a delivery one step through its
// status machine on behalf of the agent carrying it. The caller is
// identified by user account, not agent id; the handler resolves ownership.
type UpdateDeliveryStatusCommand struct {
	deliveryID  kernel.UUID
	agentUserID kernel.UUID
	newStatus   delivery.Status
	position    *kernel.GeoPoint
	guard       guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a status update command.
// position is optional; when present it is merged into the same update.
func NewUpdateDeliveryStatusCommand(
	deliveryID, agentUserID kernel.UUID,
	newStatus delivery.Status,
	position *kernel.GeoPoint,
) (UpdateDeliveryStatusCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		agentUserID.Validate(),
		newStatus.Validate(),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if position != nil {
		if err := position.Validate(); err != nil {
			return UpdateDeliveryStatusCommand{}, err
		}
	}

	return UpdateDeliveryStatusCommand{
		deliveryID:  deliveryID,
		agentUserID: agentUserID,
		newStatus:   newStatus,
		position:    position,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the delivery to update.
func (c *UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// AgentUserID returns the calling agent's user account id.
func (c *UpdateDeliveryStatusCommand) AgentUserID() kernel.UUID {
	return c.agentUserID
}

// NewStatus returns the requested status.
func (c *UpdateDeliveryStatusCommand) NewStatus() delivery.Status {
	return c.newStatus
}

// Position returns the position reported with the update, or nil.
func (c *UpdateDeliveryStatusCommand) Position() *kernel.GeoPoint {
	return c.position
}

// Validate ensures the command was created through the constructor.
func (c *UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(
		ErrUpdateDeliveryStatusCommandIsNotConstructed,
	)
}
