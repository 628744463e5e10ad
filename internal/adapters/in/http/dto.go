package http

import (
	"time"

	"bazaarlink/internal/core/domain/model/delivery"
)

// AssignDeliveryRequest is the body of POST /api/v1/deliveries/assign.
type AssignDeliveryRequest struct {
	OrderID         string  `json:"orderId"`
	DeliveryAgentID *string `json:"deliveryAgentId,omitempty"`
}

// UpdateDeliveryStatusRequest is the body of PATCH
// /api/v1/deliveries/:id/status. Coordinates are optional and merged into
// the same update when both are present.
type UpdateDeliveryStatusRequest struct {
	Status    string   `json:"status"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// UpdateDeliveryLocationRequest is the body of PATCH
// /api/v1/deliveries/:id/location.
type UpdateDeliveryLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DeliveryResponse is a delivery as returned by the write endpoints.
type DeliveryResponse struct {
	ID                 string       `json:"id"`
	OrderID            string       `json:"orderId"`
	DeliveryAgentID    string       `json:"deliveryAgentId"`
	Status             string       `json:"status"`
	PickupLocation     Coordinates  `json:"pickupLocation"`
	DropLocation       Coordinates  `json:"dropLocation"`
	CurrentPosition    *Coordinates `json:"currentPosition,omitempty"`
	AssignedAt         time.Time    `json:"assignedAt"`
	ActualDeliveryTime *time.Time   `json:"actualDeliveryTime,omitempty"`
}

// DeliveryAgentResponse is one row of GET /api/v1/deliveries/agents.
type DeliveryAgentResponse struct {
	ID               string   `json:"id"`
	UserID           string   `json:"userId"`
	IsActive         bool     `json:"isActive"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	ActiveDeliveries int      `json:"activeDeliveries"`
	IsAvailable      bool     `json:"isAvailable"`
}

// AgentDeliveryResponse is one row of GET /api/v1/deliveries/my.
type AgentDeliveryResponse struct {
	ID              string       `json:"id"`
	OrderID         string       `json:"orderId"`
	OrderNumber     string       `json:"orderNumber"`
	Status          string       `json:"status"`
	PickupLocation  Coordinates  `json:"pickupLocation"`
	DropLocation    Coordinates  `json:"dropLocation"`
	CurrentPosition *Coordinates `json:"currentPosition,omitempty"`
	AssignedAt      time.Time    `json:"assignedAt"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func deliveryFromDomain(dlv *delivery.Delivery) DeliveryResponse {
	response := DeliveryResponse{
		ID:              dlv.ID().String(),
		OrderID:         dlv.OrderID().String(),
		DeliveryAgentID: dlv.AgentID().String(),
		Status:          dlv.Status().String(),
		PickupLocation: Coordinates{
			Latitude:  dlv.PickupLocation().Latitude(),
			Longitude: dlv.PickupLocation().Longitude(),
		},
		DropLocation: Coordinates{
			Latitude:  dlv.DropLocation().Latitude(),
			Longitude: dlv.DropLocation().Longitude(),
		},
		AssignedAt:         dlv.AssignedAt(),
		ActualDeliveryTime: dlv.ActualDeliveryTime(),
	}

	if position := dlv.CurrentPosition(); position != nil {
		response.CurrentPosition = &Coordinates{
			Latitude:  position.Latitude(),
			Longitude: position.Longitude(),
		}
	}

	return response
}
