package delivery

import (
	"errors"
	"time"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"
	"bazaarlink/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")

// Delivery is the aggregate root for one agent's trip for one order.
//
// Invariants maintained by this type:
//   - exactly one delivery per order (enforced by storage, surfaced as a
//     conflict on Add)
//   - status moves strictly one step at a time through the sequence
//     PENDING -> PICKED -> OUT_FOR_DELIVERY -> DELIVERED
//   - actualDeliveryTime is set exactly when the delivery is Delivered
type Delivery struct {
	id                 kernel.UUID
	orderID            kernel.UUID
	agentID            kernel.UUID
	status             Status
	pickupLocation     kernel.GeoPoint
	dropLocation       kernel.GeoPoint
	currentPosition    *kernel.GeoPoint
	assignedAt         time.Time
	actualDeliveryTime *time.Time
	guard              guard.ConstructorGuard
}

// NewDelivery creates a fresh delivery in Pending status, assigned at the
// given time. Pickup is the shop's location, drop the customer's.
func NewDelivery(
	id, orderID, agentID kernel.UUID,
	pickup, drop kernel.GeoPoint,
	assignedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:     Pending,
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setAgentID(agentID),
		d.setPickupLocation(pickup),
		d.setDropLocation(drop),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a delivery aggregate from persistence. It
// re-checks the status/completion-time consistency rule so corrupt rows fail
// loudly on load.
func RestoreDelivery(
	id, orderID, agentID kernel.UUID,
	status Status,
	pickup, drop kernel.GeoPoint,
	currentPosition *kernel.GeoPoint,
	assignedAt time.Time,
	actualDeliveryTime *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setAgentID(agentID),
		d.setStatus(status),
		d.setPickupLocation(pickup),
		d.setDropLocation(drop),
	); err != nil {
		return nil, err
	}

	if currentPosition != nil {
		if err := currentPosition.Validate(); err != nil {
			return nil, err
		}
	}
	if err := validateCompletionTime(status, actualDeliveryTime != nil); err != nil {
		return nil, err
	}
	d.currentPosition = currentPosition
	d.actualDeliveryTime = actualDeliveryTime

	return d, nil
}

// validateCompletionTime enforces that the completion timestamp is present
// exactly on delivered trips.
func validateCompletionTime(status Status, hasTime bool) error {
	if hasTime && status != Delivered {
		return errs.NewInvalidStateError("delivery in status " + status.String() + " cannot have a completion time")
	}
	if !hasTime && status == Delivered {
		return errs.NewInvalidStateError("delivered delivery must have a completion time")
	}
	return nil
}

// Validate ensures the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil || d.guard.Validate(ErrDeliveryIsNotConstructed) != nil {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the order this delivery fulfills.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// AgentID returns the agent carrying out the delivery.
func (d *Delivery) AgentID() kernel.UUID {
	return d.agentID
}

// Status returns the current trip status.
func (d *Delivery) Status() Status {
	return d.status
}

// PickupLocation returns the shop's location.
func (d *Delivery) PickupLocation() kernel.GeoPoint {
	return d.pickupLocation
}

// DropLocation returns the customer's location.
func (d *Delivery) DropLocation() kernel.GeoPoint {
	return d.dropLocation
}

// CurrentPosition returns the agent's last reported position for this trip,
// or nil before the first report.
func (d *Delivery) CurrentPosition() *kernel.GeoPoint {
	return d.currentPosition
}

// AssignedAt returns when the delivery was created.
func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}

// ActualDeliveryTime returns the completion timestamp, or nil until
// delivered.
func (d *Delivery) ActualDeliveryTime() *time.Time {
	return d.actualDeliveryTime
}

// IsActive reports whether the delivery still occupies the agent.
func (d *Delivery) IsActive() bool {
	return d.status.IsActive()
}

// ChangeStatus advances the trip one step to next. Moving to Delivered
// records at as the completion time.
func (d *Delivery) ChangeStatus(next Status, at time.Time) error {
	newStatus, err := d.status.AdvanceTo(next)
	if err != nil {
		return err
	}

	d.status = newStatus
	if newStatus == Delivered {
		d.actualDeliveryTime = &at
	}
	return nil
}

// UpdatePosition records the agent's latest position. Position reports on a
// completed trip are rejected.
func (d *Delivery) UpdatePosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	if !d.IsActive() {
		return errs.NewInvalidStateError("delivery is already completed")
	}

	d.currentPosition = &position
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	d.agentID = agentID
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Delivery) setPickupLocation(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.pickupLocation = p
	return nil
}

func (d *Delivery) setDropLocation(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.dropLocation = p
	return nil
}
