package agent

import (
	"errors"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"
	"bazaarlink/internal/pkg/guard"
)

// MaxActiveDeliveries is the number of deliveries an agent may carry at
// once. An agent at this load is skipped by assignment.
const MaxActiveDeliveries = 3

// ErrAgentIsNotConstructed is returned when an Agent instance was not created
// through NewAgent or RestoreAgent.
var ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent constructor")

// Agent is the aggregate root for a delivery agent's dispatch profile. The
// user account behind the agent (name, phone, credentials) lives in the
// accounts service; this aggregate carries only what dispatch needs.
type Agent struct {
	id       kernel.UUID
	userID   kernel.UUID
	isActive bool
	position *kernel.GeoPoint
	guard    guard.ConstructorGuard
}

// NewAgent registers a new agent profile. Agents start active with no known
// position; they are still assignable, just last in line for proximity.
func NewAgent(id, userID kernel.UUID) (*Agent, error) {
	a := &Agent{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setUserID(userID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgent reconstructs an agent aggregate from persistence.
func RestoreAgent(id, userID kernel.UUID, isActive bool, position *kernel.GeoPoint) (*Agent, error) {
	a := &Agent{
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setUserID(userID),
	); err != nil {
		return nil, err
	}

	if position != nil {
		if err := position.Validate(); err != nil {
			return nil, err
		}
	}
	a.position = position

	return a, nil
}

// Validate ensures the Agent was created through a constructor.
func (a *Agent) Validate() error {
	if a == nil || a.guard.Validate(ErrAgentIsNotConstructed) != nil {
		return ErrAgentIsNotConstructed
	}
	return nil
}

// IsEqual compares two agents by identity.
func (a *Agent) IsEqual(other *Agent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// UserID returns the identifier of the user account behind the agent.
func (a *Agent) UserID() kernel.UUID {
	return a.userID
}

// IsActive reports whether the agent is accepting deliveries.
func (a *Agent) IsActive() bool {
	return a.isActive
}

// Position returns the agent's last reported position, or nil if the agent
// has never reported one.
func (a *Agent) Position() *kernel.GeoPoint {
	return a.position
}

// Activate makes the agent eligible for assignment.
func (a *Agent) Activate() {
	a.isActive = true
}

// Deactivate takes the agent off duty. Deliveries already in flight are not
// affected.
func (a *Agent) Deactivate() {
	a.isActive = false
}

// UpdatePosition records the agent's latest reported position.
func (a *Agent) UpdatePosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	a.position = &position
	return nil
}

// CanAccept reports whether the agent may take another delivery given its
// current active-delivery count.
func (a *Agent) CanAccept(activeDeliveries int) bool {
	return a.isActive && activeDeliveries < MaxActiveDeliveries
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("userID", err)
	}
	a.userID = userID
	return nil
}
