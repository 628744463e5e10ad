package delivery

import (
	"fmt"

	"bazaarlink/internal/pkg/errs"
)

// Status represents the fulfillment state of a delivery.
//
// The machine is strictly sequential, one step at a time:
//
//	PENDING -> PICKED -> OUT_FOR_DELIVERY -> DELIVERED
//
// Backward and skipped transitions are rejected. An agent who forgot to mark
// PICKED must do so before going out for delivery; the ordering is what makes
// the live tracking timeline trustworthy.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the delivery has been created and awaits pickup.
	Pending

	// Picked means the agent has collected the order from the shop.
	Picked

	// OutForDelivery means the agent is en route to the customer.
	OutForDelivery

	// Delivered is the terminal status.
	Delivered
)

func statusNames() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Picked:         "PICKED",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
	}
}

// StatusFromString parses a wire-format status name.
func StatusFromString(s string) (Status, error) {
	for status, name := range statusNames() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a delivery status", s))
}

// String returns the wire-format name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate reports whether the status is one of the defined values.
func (s Status) Validate() error {
	if s < Pending || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid delivery status", int(s)))
	}
	return nil
}

// IsActive reports whether the delivery still counts against its agent's
// concurrent-load capacity (anything not yet delivered).
func (s Status) IsActive() bool {
	return s == Pending || s == Picked || s == OutForDelivery
}

// CanAdvanceTo reports whether next is the immediate successor of s.
func (s Status) CanAdvanceTo(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil {
		return false
	}
	return next == s+1
}

// AdvanceTo returns the next status after validating the single forward
// step, or an InvalidTransition error naming both states.
func (s Status) AdvanceTo(next Status) (Status, error) {
	if !s.CanAdvanceTo(next) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}
