package commands

import (
	"errors"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/guard"
)

var ErrUpdateDeliveryLocationCommandIsNotConstructed = errors.New(
	"UpdateDeliveryLocationCommand must be created via NewUpdateDeliveryLocationCommand constructor",
)

// UpdateDeliveryLocationCommand reports the agent's current position for an
// active delivery. Like status updates, the caller is identified by user
// account and ownership is resolved by the handler.
type UpdateDeliveryLocationCommand struct {
	deliveryID  kernel.UUID
	agentUserID kernel.UUID
	position    kernel.GeoPoint
	guard       guard.ConstructorGuard
}

// NewUpdateDeliveryLocationCommand creates a location report command.
func NewUpdateDeliveryLocationCommand(
	deliveryID, agentUserID kernel.UUID,
	position kernel.GeoPoint,
) (UpdateDeliveryLocationCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		agentUserID.Validate(),
		position.Validate(),
	); err != nil {
		return UpdateDeliveryLocationCommand{}, err
	}

	return UpdateDeliveryLocationCommand{
		deliveryID:  deliveryID,
		agentUserID: agentUserID,
		position:    position,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the delivery being tracked.
func (c *UpdateDeliveryLocationCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// AgentUserID returns the calling agent's user account id.
func (c *UpdateDeliveryLocationCommand) AgentUserID() kernel.UUID {
	return c.agentUserID
}

// Position returns the reported position.
func (c *UpdateDeliveryLocationCommand) Position() kernel.GeoPoint {
	return c.position
}

// Validate ensures the command was created through the constructor.
func (c *UpdateDeliveryLocationCommand) Validate() error {
	return c.guard.Validate(
		ErrUpdateDeliveryLocationCommandIsNotConstructed,
	)
}
