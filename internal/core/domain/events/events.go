package events

import (
	"errors"
	"time"

	"bazaarlink/internal/pkg/errs"
)

// Message broker topics. One durable queue per topic; consumers bind by
// these names.
const (
	TopicDeliveryAssigned        = "delivery.assigned"
	TopicDeliveryStatusUpdated   = "delivery.status_updated"
	TopicDeliveryLocationUpdated = "delivery.location_updated"
)

// Event is a fact about a completed state change, published after the
// owning transaction commits. Consumers must tolerate duplicates.
type Event interface {
	Topic() string
	Validate() error
}

// DeliveryAssigned announces that an order has been handed to an agent.
type DeliveryAssigned struct {
	DeliveryID      string `json:"deliveryId"`
	OrderID         string `json:"orderId"`
	DeliveryAgentID string `json:"deliveryAgentId"`
	UserID          string `json:"userId"`
	ShopID          string `json:"shopId"`
}

// Topic implements Event.
func (e DeliveryAssigned) Topic() string {
	return TopicDeliveryAssigned
}

// Validate implements Event.
func (e DeliveryAssigned) Validate() error {
	return errors.Join(
		requireField("deliveryId", e.DeliveryID),
		requireField("orderId", e.OrderID),
		requireField("deliveryAgentId", e.DeliveryAgentID),
		requireField("userId", e.UserID),
		requireField("shopId", e.ShopID),
	)
}

// DeliveryStatusUpdated announces a forward step of a delivery's status.
type DeliveryStatusUpdated struct {
	DeliveryID      string `json:"deliveryId"`
	OrderID         string `json:"orderId"`
	DeliveryAgentID string `json:"deliveryAgentId"`
	UserID          string `json:"userId"`
	ShopID          string `json:"shopId"`
	Status          string `json:"status"`
}

// Topic implements Event.
func (e DeliveryStatusUpdated) Topic() string {
	return TopicDeliveryStatusUpdated
}

// Validate implements Event.
func (e DeliveryStatusUpdated) Validate() error {
	return errors.Join(
		requireField("deliveryId", e.DeliveryID),
		requireField("orderId", e.OrderID),
		requireField("deliveryAgentId", e.DeliveryAgentID),
		requireField("userId", e.UserID),
		requireField("shopId", e.ShopID),
		requireField("status", e.Status),
	)
}

// DeliveryLocationUpdated carries the agent's latest position for a trip.
// High volume, low value per message: consumers only ever care about the
// newest one.
type DeliveryLocationUpdated struct {
	DeliveryID string    `json:"deliveryId"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Topic implements Event.
func (e DeliveryLocationUpdated) Topic() string {
	return TopicDeliveryLocationUpdated
}

// Validate implements Event.
func (e DeliveryLocationUpdated) Validate() error {
	return errors.Join(
		requireField("deliveryId", e.DeliveryID),
		requireField("orderId", e.OrderID),
		requireField("userId", e.UserID),
	)
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
