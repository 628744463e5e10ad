package livebridge

import (
	"context"
	"errors"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDirectory resolves event identifiers straight from the read side.
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates the directory.
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// OrderNumber returns the human-facing number of one order.
func (d *GormDirectory) OrderNumber(ctx context.Context, orderID kernel.UUID) (string, error) {
	var orderNumber string
	err := d.db.WithContext(ctx).
		Raw("SELECT order_number FROM orders WHERE id = ?", orderID.Bytes()).
		Scan(&orderNumber).Error
	if err != nil {
		return "", err
	}
	if orderNumber == "" {
		return "", errs.NewObjectNotFoundError("order", orderID)
	}

	return orderNumber, nil
}

// AgentUserID returns the user account behind one delivery agent.
func (d *GormDirectory) AgentUserID(ctx context.Context, agentID kernel.UUID) (kernel.UUID, error) {
	var userID uuid.UUID
	err := d.db.WithContext(ctx).
		Raw("SELECT user_id FROM delivery_agents WHERE id = ?", agentID.Bytes()).
		Scan(&userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause("delivery agent", agentID, err)
		}
		return kernel.UUID{}, err
	}
	if userID == uuid.Nil {
		return kernel.UUID{}, errs.NewObjectNotFoundError("delivery agent", agentID)
	}

	return kernel.UUIDFromBytes(userID[:])
}
