// Package livebridge turns broker events back into live-push frames. The
// write side publishes facts; this bridge is the piece that translates them
// into what connected clients actually see: notification toasts and status
// updates on tracking screens.
package livebridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"bazaarlink/internal/core/domain/events"
	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/core/ports"
)

// Directory resolves the identifiers events carry into what frames need:
// the human-facing order number and the user account behind an agent.
type Directory interface {
	OrderNumber(ctx context.Context, orderID kernel.UUID) (string, error)
	AgentUserID(ctx context.Context, agentID kernel.UUID) (kernel.UUID, error)
}

// notificationFrame mirrors the persisted notification so the client can
// render the toast without a refetch.
type notificationFrame struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	OrderID   string `json:"orderId"`
	CreatedAt string `json:"createdAt"`
}

type statusFrame struct {
	OrderID        string `json:"orderId"`
	DeliveryStatus string `json:"deliveryStatus"`
	Timestamp      string `json:"timestamp"`
}

// Bridge fans consumed events out to the websocket hub.
type Bridge struct {
	pusher    ports.LivePusher
	directory Directory
	logger    *slog.Logger
}

// NewBridge creates a bridge pushing through pusher and resolving names
// through directory.
func NewBridge(pusher ports.LivePusher, directory Directory, logger *slog.Logger) *Bridge {
	return &Bridge{
		pusher:    pusher,
		directory: directory,
		logger:    logger.With("component", "live-bridge"),
	}
}

// HandleDeliveryAssigned pushes assignment toasts to the customer and the
// assigned agent.
func (b *Bridge) HandleDeliveryAssigned(ctx context.Context, body []byte) error {
	var event events.DeliveryAssigned
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal %s: %w", events.TopicDeliveryAssigned, err)
	}

	userID, err := kernel.UUIDFromString(event.UserID)
	if err != nil {
		return fmt.Errorf("%s userId: %w", events.TopicDeliveryAssigned, err)
	}
	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return fmt.Errorf("%s orderId: %w", events.TopicDeliveryAssigned, err)
	}
	agentID, err := kernel.UUIDFromString(event.DeliveryAgentID)
	if err != nil {
		return fmt.Errorf("%s deliveryAgentId: %w", events.TopicDeliveryAssigned, err)
	}

	orderNumber, err := b.directory.OrderNumber(ctx, orderID)
	if err != nil {
		return fmt.Errorf("resolve order %s: %w", event.OrderID, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	b.pusher.PushToUser(userID, "new_notification", notificationFrame{
		Type:      "delivery_assigned",
		Title:     "Delivery Agent Assigned",
		Message:   fmt.Sprintf("A delivery agent has been assigned to your order #%s", orderNumber),
		OrderID:   event.OrderID,
		CreatedAt: now,
	})

	agentUserID, err := b.directory.AgentUserID(ctx, agentID)
	if err != nil {
		// The customer toast went out; the agent catches up from the
		// persisted notification.
		b.logger.Error("resolve agent user failed",
			"agentId", event.DeliveryAgentID, "error", err)
		return nil
	}

	b.pusher.PushToUser(agentUserID, "new_notification", notificationFrame{
		Type:      "delivery_assigned",
		Title:     "New Delivery Assigned",
		Message:   fmt.Sprintf("You have been assigned a new delivery for order #%s", orderNumber),
		OrderID:   event.OrderID,
		CreatedAt: now,
	})

	return nil
}

// HandleDeliveryStatusUpdated pushes progress frames to the customer and to
// everyone tracking the delivery or the order.
func (b *Bridge) HandleDeliveryStatusUpdated(ctx context.Context, body []byte) error {
	var event events.DeliveryStatusUpdated
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal %s: %w", events.TopicDeliveryStatusUpdated, err)
	}

	userID, err := kernel.UUIDFromString(event.UserID)
	if err != nil {
		return fmt.Errorf("%s userId: %w", events.TopicDeliveryStatusUpdated, err)
	}
	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return fmt.Errorf("%s orderId: %w", events.TopicDeliveryStatusUpdated, err)
	}
	deliveryID, err := kernel.UUIDFromString(event.DeliveryID)
	if err != nil {
		return fmt.Errorf("%s deliveryId: %w", events.TopicDeliveryStatusUpdated, err)
	}

	frame := statusFrame{
		OrderID:        event.OrderID,
		DeliveryStatus: event.Status,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	b.pusher.PushToUser(userID, "delivery_status_update", frame)
	b.pusher.PushToDelivery(deliveryID, "delivery_status_update", frame)
	b.pusher.PushToOrder(orderID, "order_status_update", frame)

	title, message, ok := statusNotification(event.Status)
	if !ok {
		return nil
	}

	orderNumber, err := b.directory.OrderNumber(ctx, orderID)
	if err != nil {
		return fmt.Errorf("resolve order %s: %w", event.OrderID, err)
	}

	b.pusher.PushToUser(userID, "new_notification", notificationFrame{
		Type:      "delivery_status_updated",
		Title:     title,
		Message:   fmt.Sprintf(message, orderNumber),
		OrderID:   event.OrderID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return nil
}

// statusNotification maps a delivery status to its customer toast. Statuses
// without a toast still push tracking frames.
func statusNotification(status string) (title, message string, ok bool) {
	switch status {
	case delivery.Picked.String():
		return "Order Picked Up", "Your order #%s has been picked up by the delivery agent", true
	case delivery.OutForDelivery.String():
		return "Out for Delivery", "Your order #%s is out for delivery", true
	case delivery.Delivered.String():
		return "Order Delivered", "Your order #%s has been delivered successfully", true
	default:
		return "", "", false
	}
}
