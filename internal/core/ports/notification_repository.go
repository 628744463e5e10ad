package ports

import (
	"context"

	"bazaarlink/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for in-app
// notifications. Writes happen inside the transaction of the state change
// they describe.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error
}
