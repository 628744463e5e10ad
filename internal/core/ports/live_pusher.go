package ports

import "bazaarlink/internal/core/domain/model/kernel"

// LivePusher fans a payload out to connected clients. Pushes are
// fire-and-forget: a client that is offline simply misses the frame and
// catches up from persisted state.
type LivePusher interface {
	// PushToUser delivers payload to every connection of one user.
	PushToUser(userID kernel.UUID, event string, payload any)

	// PushToDelivery delivers payload to clients tracking one delivery.
	PushToDelivery(deliveryID kernel.UUID, event string, payload any)

	// PushToOrder delivers payload to clients tracking one order.
	PushToOrder(orderID kernel.UUID, event string, payload any)

	// PushToRole delivers payload to every connected user with the role.
	PushToRole(role string, event string, payload any)
}
