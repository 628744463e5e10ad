package agentrepo

import (
	"context"
	"errors"

	"bazaarlink/internal/core/domain/model/agent"
	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgentRepository implements AgentRepository using GORM.
type GormAgentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgentRepository creates a new GORM agent repository.
func NewGormAgentRepository(db *gorm.DB, tracker aggregateTracker) *GormAgentRepository {
	return &GormAgentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Update saves an existing agent to the database.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery agent", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByUserID retrieves the agent profile behind a user account.
func (r *GormAgentRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery agent", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves active agents below the concurrent-load cap, in
// registration order. The count happens in the database so the roster stays
// one query regardless of fleet size.
//
// is_active carries both the agent's duty toggle and the owning account's
// standing: this service has no users table, and the auth boundary flips the
// agent row off when it suspends the account. A single predicate here covers
// both.
func (r *GormAgentRepository) GetAllAvailable(ctx context.Context) ([]*agent.Agent, error) {
	activeStatuses := []string{
		delivery.Pending.String(),
		delivery.Picked.String(),
		delivery.OutForDelivery.String(),
	}

	var dtos []AgentDTO
	err := r.db.WithContext(ctx).
		Table("delivery_agents").
		Select("delivery_agents.*").
		Joins("LEFT JOIN deliveries ON deliveries.agent_id = delivery_agents.id AND deliveries.status IN ?", activeStatuses).
		Where("delivery_agents.is_active").
		Group("delivery_agents.id").
		Having("COUNT(deliveries.id) < ?", agent.MaxActiveDeliveries).
		Order("delivery_agents.created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	agents := make([]*agent.Agent, 0, len(dtos))
	for _, dto := range dtos {
		a, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		agents = append(agents, a)
	}

	return agents, nil
}
