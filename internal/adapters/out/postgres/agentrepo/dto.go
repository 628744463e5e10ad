// Package agentrepo provides data transfer objects and mapping functions
// for delivery agent persistence.
package agentrepo

import (
	"time"

	"bazaarlink/internal/core/domain/model/agent"
	"bazaarlink/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO represents the database structure for persisting agent
// aggregates. CreatedAt doubles as the stable roster ordering.
type AgentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	IsActive  bool      `gorm:"not null"`
	Latitude  *float64  `gorm:""`
	Longitude *float64  `gorm:""`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "delivery_agents"
}

// fromDomain converts an agent domain aggregate to its database
// representation.
func fromDomain(aggregate *agent.Agent) AgentDTO {
	dto := AgentDTO{
		ID:       aggregate.ID().Bytes(),
		UserID:   aggregate.UserID().Bytes(),
		IsActive: aggregate.IsActive(),
	}

	if position := aggregate.Position(); position != nil {
		lat, lon := position.Latitude(), position.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

// toDomain converts a database DTO to an agent domain aggregate.
func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
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

	return agent.RestoreAgent(id, userID, dto.IsActive, position)
}
