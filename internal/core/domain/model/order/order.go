package order

import (
	"errors"
	"time"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"
	"bazaarlink/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root for a customer's purchase against one shop.
//
// Invariants maintained by this type:
//   - identity, customer, shop and order number are always valid and immutable
//   - status only moves forward through the lifecycle (see Status)
//   - a delivery agent is attached exactly when the order has entered
//     delivery (OutForDelivery or Delivered)
//   - deliveredAt is set exactly when the order is Delivered
//
// Which actor drives which transition is an application concern; the
// aggregate is the single transition authority either way, so the order
// service and the delivery service cannot disagree about legality.
type Order struct {
	id               kernel.UUID
	userID           kernel.UUID
	shopID           kernel.UUID
	orderNumber      string
	status           Status
	deliveryAgentID  *kernel.UUID
	totals           Totals
	deliveryLocation kernel.GeoPoint
	deliveredAt      *time.Time
	guard            guard.ConstructorGuard
}

// NewOrder creates a fresh order in Pending status.
//
// Parameters:
//   - id: unique order identifier
//   - userID: the customer placing the order
//   - shopID: the shop the order is placed against
//   - orderNumber: unique human-readable reference, e.g. "BZL-20260812-0042"
//   - totals: validated monetary breakdown
//   - deliveryLocation: where the order is to be dropped off
func NewOrder(
	id, userID, shopID kernel.UUID,
	orderNumber string,
	totals Totals,
	deliveryLocation kernel.GeoPoint,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setShopID(shopID),
		o.setOrderNumber(orderNumber),
		o.setTotals(totals),
		o.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistence, including
// lifecycle state, agent assignment and delivery timestamp. It re-checks the
// status/agent consistency rule so corrupt rows fail loudly on load.
func RestoreOrder(
	id, userID, shopID kernel.UUID,
	orderNumber string,
	status Status,
	deliveryAgentID *kernel.UUID,
	totals Totals,
	deliveryLocation kernel.GeoPoint,
	deliveredAt *time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setShopID(shopID),
		o.setOrderNumber(orderNumber),
		o.setStatus(status),
		o.setTotals(totals),
		o.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return nil, err
	}

	if deliveryAgentID != nil {
		if err := deliveryAgentID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := validateAgentForStatus(status, deliveryAgentID != nil); err != nil {
		return nil, err
	}
	o.deliveryAgentID = deliveryAgentID
	o.deliveredAt = deliveredAt

	return o, nil
}

// validateAgentForStatus enforces that an agent is attached exactly for the
// delivery-phase statuses.
func validateAgentForStatus(status Status, hasAgent bool) error {
	inDelivery := status == OutForDelivery || status == Delivered
	if hasAgent && !inDelivery {
		return errs.NewInvalidStateError("order in status " + status.String() + " cannot have a delivery agent")
	}
	if !hasAgent && inDelivery {
		return errs.NewInvalidStateError("order in status " + status.String() + " must have a delivery agent")
	}
	return nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || o.guard.Validate(ErrOrderIsNotConstructed) != nil {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the customer's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// ShopID returns the shop's identifier.
func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// OrderNumber returns the human-readable order reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryAgent returns the assigned agent's ID, or nil before assignment.
func (o *Order) DeliveryAgent() *kernel.UUID {
	return o.deliveryAgentID
}

// Totals returns the monetary breakdown.
func (o *Order) Totals() Totals {
	return o.totals
}

// DeliveryLocation returns the drop-off location.
func (o *Order) DeliveryLocation() kernel.GeoPoint {
	return o.deliveryLocation
}

// DeliveredAt returns the completion timestamp, or nil until delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// TransitionTo advances the order through the vendor-driven part of its
// lifecycle (Confirmed, Preparing, Ready). Assignment, delivery and
// cancellation have dedicated methods because they carry extra effects.
func (o *Order) TransitionTo(next Status) error {
	if next == OutForDelivery || next == Delivered || next == Cancelled {
		return errs.NewInvalidTransitionError(o.status.String(), next.String())
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Assign attaches a delivery agent and moves the order out for delivery.
// Only legal from Ready; any other status is an invalid-state error so the
// caller can distinguish "not ready" from a generic bad transition.
func (o *Order) Assign(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if o.status != Ready {
		return errs.NewInvalidStateError("order is not ready for delivery")
	}

	o.status = OutForDelivery
	o.deliveryAgentID = &agentID
	return nil
}

// Deliver completes the order at the given time. Only legal from
// OutForDelivery.
func (o *Order) Deliver(at time.Time) error {
	newStatus, err := o.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &at
	return nil
}

// Cancel aborts the order. Only legal from Pending or Confirmed.
func (o *Order) Cancel() error {
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}
	o.shopID = shopID
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}
	o.totals = totals
	return nil
}

func (o *Order) setDeliveryLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}
