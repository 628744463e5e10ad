package commands

import (
	"errors"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand requests that a ready order be handed to a delivery
// agent. The agent may be named explicitly (admin override) or left to the
// nearest-agent selection policy.
//
// Example:
//
//	cmd, err := NewAssignDeliveryCommand(orderID, nil)
//	result, err := handler.Handle(ctx, cmd)
type AssignDeliveryCommand struct {
	orderID         kernel.UUID
	explicitAgentID *kernel.UUID
	guard           guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates an assignment command for an order.
// explicitAgentID is optional; pass nil to let proximity decide.
func NewAssignDeliveryCommand(orderID kernel.UUID, explicitAgentID *kernel.UUID) (AssignDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignDeliveryCommand{}, err
	}
	if explicitAgentID != nil {
		if err := explicitAgentID.Validate(); err != nil {
			return AssignDeliveryCommand{}, err
		}
	}

	return AssignDeliveryCommand{
		orderID:         orderID,
		explicitAgentID: explicitAgentID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to assign.
func (c *AssignDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ExplicitAgentID returns the requested agent, or nil for automatic
// selection.
func (c *AssignDeliveryCommand) ExplicitAgentID() *kernel.UUID {
	return c.explicitAgentID
}

// Validate ensures the command was created through the constructor.
func (c *AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignDeliveryCommandIsNotConstructed,
	)
}
