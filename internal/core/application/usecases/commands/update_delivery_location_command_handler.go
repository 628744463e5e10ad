package commands

import (
	"context"
	"log/slog"
	"time"

	"bazaarlink/internal/core/domain/events"
	"bazaarlink/internal/core/ports"
	"bazaarlink/internal/pkg/metrics"
)

// LocationPush is the frame pushed to clients tracking a delivery or an
// order when the agent reports a new position.
type LocationPush struct {
	DeliveryID string  `json:"deliveryId"`
	OrderID    string  `json:"orderId"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  string  `json:"timestamp"`
}

// UpdateDeliveryLocationCommandHandler records an agent's position report
// against both the delivery and the agent's own profile, so the next
// assignment ranks the agent by where they actually are. After commit the
// position fans out twice: to the broker for other services, and straight
// to the live hub for clients watching this trip.
type UpdateDeliveryLocationCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	pusher     ports.LivePusher
	logger     *slog.Logger
}

// NewUpdateDeliveryLocationCommandHandler creates a handler for location
// reports.
func NewUpdateDeliveryLocationCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	pusher ports.LivePusher,
	logger *slog.Logger,
) UpdateDeliveryLocationCommandHandler {
	return UpdateDeliveryLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		pusher:     pusher,
		logger:     logger.With("component", "update-delivery-location"),
	}
}

// Handle processes a location report.
//
// Error taxonomy:
//   - ObjectNotFound: the caller is not an agent, or the delivery does not
//     exist for this agent
//   - InvalidState: the delivery is already completed
func (h UpdateDeliveryLocationCommandHandler) Handle(
	ctx context.Context, command UpdateDeliveryLocationCommand,
) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agt, err := uow.AgentRepository().GetByUserID(ctx, command.AgentUserID())
	if err != nil {
		return err
	}

	dlv, err := uow.DeliveryRepository().GetOwned(ctx, command.DeliveryID(), agt.ID())
	if err != nil {
		return err
	}

	ord, err := uow.OrderRepository().Get(ctx, dlv.OrderID())
	if err != nil {
		return err
	}

	if err := dlv.UpdatePosition(command.Position()); err != nil {
		return err
	}
	if err := agt.UpdatePosition(command.Position()); err != nil {
		return err
	}

	if err := uow.DeliveryRepository().Update(ctx, dlv); err != nil {
		return err
	}
	if err := uow.AgentRepository().Update(ctx, agt); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	metrics.LocationUpdates.Inc()

	now := time.Now()
	event := events.DeliveryLocationUpdated{
		DeliveryID: dlv.ID().String(),
		OrderID:    ord.ID().String(),
		UserID:     ord.UserID().String(),
		Latitude:   command.Position().Latitude(),
		Longitude:  command.Position().Longitude(),
		RecordedAt: now,
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish event", "topic", event.Topic(), "error", err)
	}

	push := LocationPush{
		DeliveryID: dlv.ID().String(),
		OrderID:    ord.ID().String(),
		Latitude:   command.Position().Latitude(),
		Longitude:  command.Position().Longitude(),
		Timestamp:  now.Format(time.RFC3339),
	}
	h.pusher.PushToDelivery(dlv.ID(), "delivery_location_update", push)
	h.pusher.PushToOrder(ord.ID(), "delivery_location_update", push)

	return nil
}
