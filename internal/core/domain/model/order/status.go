package order

import (
	"fmt"

	"bazaarlink/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions move monotonically forward:
//
//	PENDING -> CONFIRMED -> PREPARING -> READY -> OUT_FOR_DELIVERY -> DELIVERED
//	   │           │
//	   └───────────┴──> CANCELLED
//
// Cancellation is only reachable from PENDING or CONFIRMED; once preparation
// has started the order runs to completion. DELIVERED and CANCELLED are
// terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status. The zero value helps
	// catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a customer places the order.
	Pending

	// Confirmed means the vendor has accepted the order.
	Confirmed

	// Preparing means the vendor is working on the order.
	Preparing

	// Ready means the order awaits pickup by a delivery agent. Assignment is
	// only legal from this status.
	Ready

	// OutForDelivery means a delivery agent has been assigned and the order
	// is in transit.
	OutForDelivery

	// Delivered is the successful terminal status.
	Delivered

	// Cancelled is the abandoned terminal status, reachable only from
	// Pending or Confirmed.
	Cancelled
)

// statusNames maps statuses onto their wire representation, shared by the
// database, events, and the HTTP surface.
func statusNames() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Confirmed:      "CONFIRMED",
		Preparing:      "PREPARING",
		Ready:          "READY",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
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
		fmt.Errorf("%q is not an order status", s))
}

// String returns the wire-format name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate reports whether the status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", int(s)))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step. Forward jumps that skip intermediate states are allowed (a vendor may
// confirm and mark ready in one action); moving backward is not.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if next == Cancelled {
		return s == Pending || s == Confirmed
	}
	return next > s && next != Unknown
}

// TransitionTo returns the next status after validating the move, or an
// InvalidTransition error naming both states.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}
