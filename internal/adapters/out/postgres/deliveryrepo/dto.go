// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, handling conversion between domain entities and
// database representations.
package deliveryrepo

import (
	"time"

	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. The unique index on OrderID is what makes "one delivery per
// order" hold under concurrent assignment.
type DeliveryDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	AgentID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status             string     `gorm:"type:varchar(32);not null;index"`
	PickupLatitude     float64    `gorm:"not null"`
	PickupLongitude    float64    `gorm:"not null"`
	DropLatitude       float64    `gorm:"not null"`
	DropLongitude      float64    `gorm:"not null"`
	Latitude           *float64   `gorm:""`
	Longitude          *float64   `gorm:""`
	AssignedAt         time.Time  `gorm:"not null"`
	ActualDeliveryTime *time.Time `gorm:""`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// activeStatuses are the wire names of the statuses that count against an
// agent's concurrent load.
func activeStatuses() []string {
	return []string{
		delivery.Pending.String(),
		delivery.Picked.String(),
		delivery.OutForDelivery.String(),
	}
}

// fromDomain converts a delivery domain aggregate to its database
// representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:                 aggregate.ID().Bytes(),
		OrderID:            aggregate.OrderID().Bytes(),
		AgentID:            aggregate.AgentID().Bytes(),
		Status:             aggregate.Status().String(),
		PickupLatitude:     aggregate.PickupLocation().Latitude(),
		PickupLongitude:    aggregate.PickupLocation().Longitude(),
		DropLatitude:       aggregate.DropLocation().Latitude(),
		DropLongitude:      aggregate.DropLocation().Longitude(),
		AssignedAt:         aggregate.AssignedAt(),
		ActualDeliveryTime: aggregate.ActualDeliveryTime(),
	}

	if position := aggregate.CurrentPosition(); position != nil {
		lat, lon := position.Latitude(), position.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

// toDomain converts a database DTO to a delivery domain aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLatitude, dto.PickupLongitude)
	if err != nil {
		return nil, err
	}
	drop, err := kernel.NewGeoPoint(dto.DropLatitude, dto.DropLongitude)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, posErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if posErr != nil {
			return nil, posErr
		}
		position = &p
	}

	return delivery.RestoreDelivery(
		id, orderID, agentID, status,
		pickup, drop, position,
		dto.AssignedAt, dto.ActualDeliveryTime,
	)
}
