package notification

import (
	"errors"
	"time"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"
	"bazaarlink/internal/pkg/guard"
)

// Kind labels what a notification is about. The values are stored and sent
// to clients as-is, so they are stable wire identifiers.
type Kind string

const (
	KindDeliveryAssigned   Kind = "delivery_assigned"
	KindOrderStatusUpdated Kind = "order_status_updated"
	KindOrderDelivered     Kind = "order_delivered"
)

// Validate reports whether the kind is one of the defined values.
func (k Kind) Validate() error {
	switch k {
	case KindDeliveryAssigned, KindOrderStatusUpdated, KindOrderDelivered:
		return nil
	}
	return errs.NewValueIsInvalidError("kind")
}

// ErrNotificationIsNotConstructed is returned when a Notification instance
// was not created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification constructor")

// Notification is a persisted in-app message for one user. It is written in
// the same transaction as the state change it describes, then surfaced by
// the notifications feed.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	orderID   kernel.UUID
	kind      Kind
	title     string
	message   string
	isRead    bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewNotification creates an unread notification for the given user about
// the given order.
func NewNotification(
	id, userID, orderID kernel.UUID,
	kind Kind,
	title, message string,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setUserID(userID),
		n.setOrderID(orderID),
		n.setKind(kind),
		n.setTitle(title),
		n.setMessage(message),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id, userID, orderID kernel.UUID,
	kind Kind,
	title, message string,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, userID, orderID, kind, title, message, createdAt)
	if err != nil {
		return nil, err
	}
	n.isRead = isRead
	return n, nil
}

// Validate ensures the Notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil || n.guard.Validate(ErrNotificationIsNotConstructed) != nil {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// UserID returns the recipient's identifier.
func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

// OrderID returns the order the notification is about.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// Kind returns the notification kind.
func (n *Notification) Kind() Kind {
	return n.kind
}

// Title returns the short headline.
func (n *Notification) Title() string {
	return n.title
}

// Message returns the body text.
func (n *Notification) Message() string {
	return n.message
}

// IsRead reports whether the recipient has seen the notification.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns when the notification was written.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead marks the notification as seen.
func (n *Notification) MarkRead() {
	n.isRead = true
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	n.userID = userID
	return nil
}

func (n *Notification) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	n.orderID = orderID
	return nil
}

func (n *Notification) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	n.kind = kind
	return nil
}

func (n *Notification) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	n.title = title
	return nil
}

func (n *Notification) setMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}
