package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bazaarlink/internal/core/domain/events"
	"bazaarlink/internal/core/domain/model/agent"
	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/core/domain/model/notification"
	"bazaarlink/internal/core/domain/model/order"
	"bazaarlink/internal/core/domain/services"
	"bazaarlink/internal/core/ports"
	"bazaarlink/internal/pkg/errs"
	"bazaarlink/internal/pkg/metrics"
)

// AssignDeliveryCommandHandler orchestrates handing a ready order to an
// agent: pick the agent, create the delivery, move the order out for
// delivery and write both notifications, all in one transaction. The
// delivery.assigned event is published only after the transaction commits.
type AssignDeliveryCommandHandler struct {
	uowFactory UoWFactory
	selector   services.AgentSelector
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignDeliveryCommandHandler creates a handler for delivery
// assignment operations.
func NewAssignDeliveryCommandHandler(
	uowFactory UoWFactory,
	selector services.AgentSelector,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		selector:   selector,
		publisher:  publisher,
		logger:     logger.With("component", "assign-delivery"),
	}
}

// Handle processes the assignment command and returns the created delivery.
//
// Error taxonomy, in check order:
//   - ObjectNotFound: order does not exist
//   - InvalidState: order is not in Ready status
//   - Conflict: the order already has a delivery
//   - Unavailable: no agent can take the order right now
//   - ObjectNotFound / InvalidState: an explicitly named agent is missing
//     or off duty
func (h AssignDeliveryCommandHandler) Handle(
	ctx context.Context, command AssignDeliveryCommand,
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

	ord, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if ord.Status() != order.Ready {
		return nil, errs.NewInvalidStateError("order is not ready for delivery")
	}

	if _, err := uow.DeliveryRepository().GetByOrderID(ctx, command.OrderID()); err == nil {
		return nil, errs.NewConflictError("delivery already assigned for this order")
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	shp, err := uow.ShopRepository().Get(ctx, ord.ShopID())
	if err != nil {
		return nil, err
	}

	assignee, err := h.resolveAgent(ctx, uow, command.ExplicitAgentID(), shp.Location())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dlv, err := delivery.NewDelivery(
		kernel.NewUUID(), ord.ID(), assignee.ID(),
		shp.Location(), ord.DeliveryLocation(), now,
	)
	if err != nil {
		return nil, err
	}
	if position := assignee.Position(); position != nil {
		if err := dlv.UpdatePosition(*position); err != nil {
			return nil, err
		}
	}

	if err := ord.Assign(assignee.ID()); err != nil {
		return nil, err
	}

	// The unique index on the delivery's order surfaces a concurrent
	// assignment here as a Conflict.
	if err := uow.DeliveryRepository().Add(ctx, dlv); err != nil {
		return nil, err
	}
	if err := uow.OrderRepository().Update(ctx, ord); err != nil {
		return nil, err
	}
	if err := h.writeNotifications(ctx, uow, ord, assignee, now); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.DeliveriesAssigned.Inc()
	h.publish(ctx, events.DeliveryAssigned{
		DeliveryID:      dlv.ID().String(),
		OrderID:         ord.ID().String(),
		DeliveryAgentID: assignee.ID().String(),
		UserID:          ord.UserID().String(),
		ShopID:          ord.ShopID().String(),
	})

	return dlv, nil
}

// resolveAgent picks the assignee: the explicitly named agent when given,
// otherwise the available agent nearest to pickup.
func (h AssignDeliveryCommandHandler) resolveAgent(
	ctx context.Context, uow UoW, explicitAgentID *kernel.UUID, pickup kernel.GeoPoint,
) (*agent.Agent, error) {
	if explicitAgentID != nil {
		candidate, err := uow.AgentRepository().Get(ctx, *explicitAgentID)
		if err != nil {
			return nil, err
		}
		if !candidate.IsActive() {
			return nil, errs.NewInvalidStateError("delivery agent is inactive")
		}

		active, err := uow.DeliveryRepository().CountActiveByAgent(ctx, candidate.ID())
		if err != nil {
			return nil, err
		}
		if !candidate.CanAccept(active) {
			return nil, errs.NewUnavailableError("delivery agent is at capacity")
		}
		return candidate, nil
	}

	candidates, err := uow.AgentRepository().GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}

	selected := h.selector.SelectNearest(pickup, candidates)
	if selected == nil {
		return nil, errs.NewUnavailableError("no available delivery agents found")
	}
	return selected, nil
}

// writeNotifications records the in-app messages for the customer and the
// agent inside the assignment transaction.
func (h AssignDeliveryCommandHandler) writeNotifications(
	ctx context.Context, uow UoW, ord *order.Order, assignee *agent.Agent, at time.Time,
) error {
	agentNote, err := notification.NewNotification(
		kernel.NewUUID(), assignee.UserID(), ord.ID(),
		notification.KindDeliveryAssigned,
		"New Delivery Assigned",
		fmt.Sprintf("You have been assigned a new delivery for order #%s", ord.OrderNumber()),
		at,
	)
	if err != nil {
		return err
	}

	customerNote, err := notification.NewNotification(
		kernel.NewUUID(), ord.UserID(), ord.ID(),
		notification.KindDeliveryAssigned,
		"Delivery Agent Assigned",
		fmt.Sprintf("A delivery agent has been assigned to your order #%s", ord.OrderNumber()),
		at,
	)
	if err != nil {
		return err
	}

	if err := uow.NotificationRepository().Add(ctx, agentNote); err != nil {
		return err
	}
	return uow.NotificationRepository().Add(ctx, customerNote)
}

// publish sends an event after commit. A broker outage must not undo a
// committed assignment, so failures are logged and dropped.
func (h AssignDeliveryCommandHandler) publish(ctx context.Context, event events.Event) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish event", "topic", event.Topic(), "error", err)
	}
}
