package shop

import (
	"errors"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"
	"bazaarlink/internal/pkg/guard"
)

// ErrShopIsNotConstructed is returned when a Shop instance was not created
// through NewShop or RestoreShop.
var ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop or RestoreShop constructor")

// Shop is the pickup side of every delivery. Catalog, hours and vendor
// management live elsewhere; dispatch only needs identity and location.
type Shop struct {
	id       kernel.UUID
	vendorID kernel.UUID
	name     string
	location kernel.GeoPoint
	guard    guard.ConstructorGuard
}

// NewShop creates a shop at the given location.
func NewShop(id, vendorID kernel.UUID, name string, location kernel.GeoPoint) (*Shop, error) {
	s := &Shop{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setVendorID(vendorID),
		s.setName(name),
		s.setLocation(location),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShop reconstructs a shop aggregate from persistence.
func RestoreShop(id, vendorID kernel.UUID, name string, location kernel.GeoPoint) (*Shop, error) {
	return NewShop(id, vendorID, name, location)
}

// Validate ensures the Shop was created through a constructor.
func (s *Shop) Validate() error {
	if s == nil || s.guard.Validate(ErrShopIsNotConstructed) != nil {
		return ErrShopIsNotConstructed
	}
	return nil
}

// ID returns the shop's unique identifier.
func (s *Shop) ID() kernel.UUID {
	return s.id
}

// VendorID returns the owning vendor's identifier.
func (s *Shop) VendorID() kernel.UUID {
	return s.vendorID
}

// Name returns the shop's display name.
func (s *Shop) Name() string {
	return s.name
}

// Location returns the shop's pickup location.
func (s *Shop) Location() kernel.GeoPoint {
	return s.location
}

func (s *Shop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shop) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	s.vendorID = vendorID
	return nil
}

func (s *Shop) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Shop) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}
