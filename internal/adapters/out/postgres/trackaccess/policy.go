// Package trackaccess answers whether a user may track a delivery or an
// order over the live-push channel. The answer comes from persisted
// ownership: the customer who placed the order, the agent carrying it, and
// the vendor selling it may track; admins may track everything.
package trackaccess

import (
	"context"

	"bazaarlink/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

const roleAdmin = "ADMIN"

// GormTrackAccessPolicy implements livepush.AccessPolicy on top of the
// relational schema.
type GormTrackAccessPolicy struct {
	db *gorm.DB
}

// NewGormTrackAccessPolicy creates the policy.
func NewGormTrackAccessPolicy(db *gorm.DB) *GormTrackAccessPolicy {
	return &GormTrackAccessPolicy{db: db}
}

// CanTrackDelivery reports whether the user is a party to the delivery.
func (p *GormTrackAccessPolicy) CanTrackDelivery(
	ctx context.Context,
	userID kernel.UUID,
	role string,
	deliveryID kernel.UUID,
) (bool, error) {
	if role == roleAdmin {
		return true, nil
	}

	var count int64
	err := p.db.WithContext(ctx).Raw(`
		SELECT COUNT(1)
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		JOIN delivery_agents a ON a.id = d.agent_id
		JOIN shops s ON s.id = o.shop_id
		WHERE d.id = ?
			AND (o.user_id = ? OR a.user_id = ? OR s.vendor_id = ?)
	`, deliveryID.Bytes(), userID.Bytes(), userID.Bytes(), userID.Bytes()).
		Scan(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CanTrackOrder reports whether the user is a party to the order. The
// assigned agent, if any, counts as a party.
func (p *GormTrackAccessPolicy) CanTrackOrder(
	ctx context.Context,
	userID kernel.UUID,
	role string,
	orderID kernel.UUID,
) (bool, error) {
	if role == roleAdmin {
		return true, nil
	}

	var count int64
	err := p.db.WithContext(ctx).Raw(`
		SELECT COUNT(1)
		FROM orders o
		JOIN shops s ON s.id = o.shop_id
		LEFT JOIN deliveries d ON d.order_id = o.id
		LEFT JOIN delivery_agents a ON a.id = d.agent_id
		WHERE o.id = ?
			AND (o.user_id = ? OR s.vendor_id = ? OR a.user_id = ?)
	`, orderID.Bytes(), userID.Bytes(), userID.Bytes(), userID.Bytes()).
		Scan(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
