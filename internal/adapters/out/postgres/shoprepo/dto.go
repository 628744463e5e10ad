// Package shoprepo provides read-only access to shop rows for dispatch.
// The vendor service owns the table; this package never writes to it.
package shoprepo

import (
	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/core/domain/model/shop"

	"github.com/google/uuid"
)

// ShopDTO represents the columns of the shops table that dispatch reads.
type ShopDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
}

// TableName specifies the database table name for shop entities.
func (ShopDTO) TableName() string {
	return "shops"
}

// toDomain converts a database DTO to a shop domain aggregate.
func toDomain(dto ShopDTO) (*shop.Shop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return shop.RestoreShop(id, vendorID, dto.Name, location)
}
