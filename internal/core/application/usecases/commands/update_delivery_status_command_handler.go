package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bazaarlink/internal/core/domain/events"
	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/core/domain/model/notification"
	"bazaarlink/internal/core/ports"
	"bazaarlink/internal/pkg/metrics"
)

// UpdateDeliveryStatusCommandHandler advances a delivery's status for the
// agent carrying it. Ownership is enforced by scoped lookup: a delivery
// that exists but belongs to another agent reads as not found, so agents
// cannot probe for foreign delivery identifiers.
//
// Completing a delivery also completes the order and writes the customer's
// notification, all in the same transaction.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery
// status updates.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "update-delivery-status"),
	}
}

// Handle processes the status update and returns the updated delivery.
//
// Error taxonomy:
//   - ObjectNotFound: the caller is not an agent, or the delivery does not
//     exist for this agent
//   - InvalidTransition: the requested status is not the next forward step
func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context, command UpdateDeliveryStatusCommand,
) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agt, err := uow.AgentRepository().GetByUserID(ctx, command.AgentUserID())
	if err != nil {
		return nil, err
	}

	dlv, err := uow.DeliveryRepository().GetOwned(ctx, command.DeliveryID(), agt.ID())
	if err != nil {
		return nil, err
	}

	// Position first: once the trip completes, position reports are
	// rejected.
	if position := command.Position(); position != nil {
		if err := dlv.UpdatePosition(*position); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err := dlv.ChangeStatus(command.NewStatus(), now); err != nil {
		return nil, err
	}

	ord, err := uow.OrderRepository().Get(ctx, dlv.OrderID())
	if err != nil {
		return nil, err
	}

	if command.NewStatus() == delivery.Delivered {
		if err := ord.Deliver(*dlv.ActualDeliveryTime()); err != nil {
			return nil, err
		}
		if err := uow.OrderRepository().Update(ctx, ord); err != nil {
			return nil, err
		}

		note, err := notification.NewNotification(
			kernel.NewUUID(), ord.UserID(), ord.ID(),
			notification.KindOrderDelivered,
			"Order Delivered",
			fmt.Sprintf("Your order #%s has been delivered successfully", ord.OrderNumber()),
			now,
		)
		if err != nil {
			return nil, err
		}
		if err := uow.NotificationRepository().Add(ctx, note); err != nil {
			return nil, err
		}
	}

	if err := uow.DeliveryRepository().Update(ctx, dlv); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.DeliveryStatusUpdates.WithLabelValues(dlv.Status().String()).Inc()
	event := events.DeliveryStatusUpdated{
		DeliveryID:      dlv.ID().String(),
		OrderID:         ord.ID().String(),
		DeliveryAgentID: agt.ID().String(),
		UserID:          ord.UserID().String(),
		ShopID:          ord.ShopID().String(),
		Status:          dlv.Status().String(),
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish event", "topic", event.Topic(), "error", err)
	}

	return dlv, nil
}
