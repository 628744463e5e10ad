// Package orderrepo provides data transfer objects and mapping functions
// for order persistence as the delivery core sees orders. The order service
// owns the rest of the row; this package reads and writes only the columns
// dispatch is responsible for.
package orderrepo

import (
	"time"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderNumber       string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status            string          `gorm:"type:varchar(32);not null;index"`
	DeliveryAgentID   *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryCharge    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryLatitude  float64         `gorm:"not null"`
	DeliveryLongitude float64         `gorm:"not null"`
	DeliveredAt       *time.Time      `gorm:""`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                aggregate.ID().Bytes(),
		UserID:            aggregate.UserID().Bytes(),
		ShopID:            aggregate.ShopID().Bytes(),
		OrderNumber:       aggregate.OrderNumber(),
		Status:            aggregate.Status().String(),
		Subtotal:          aggregate.Totals().Subtotal(),
		Tax:               aggregate.Totals().Tax(),
		DeliveryCharge:    aggregate.Totals().DeliveryCharge(),
		Total:             aggregate.Totals().Total(),
		DeliveryLatitude:  aggregate.DeliveryLocation().Latitude(),
		DeliveryLongitude: aggregate.DeliveryLocation().Longitude(),
		DeliveredAt:       aggregate.DeliveredAt(),
	}

	if agentID := aggregate.DeliveryAgent(); agentID != nil {
		raw := agentID.Bytes()
		dto.DeliveryAgentID = &raw
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.DeliveryAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.DeliveryAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	totals, err := order.RestoreTotals(dto.Subtotal, dto.Tax, dto.DeliveryCharge, dto.Total)
	if err != nil {
		return nil, err
	}

	deliveryLocation, err := kernel.NewGeoPoint(dto.DeliveryLatitude, dto.DeliveryLongitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, userID, shopID,
		dto.OrderNumber, status, agentID,
		totals, deliveryLocation, dto.DeliveredAt,
	)
}
