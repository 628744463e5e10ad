package order

import (
	"fmt"

	"bazaarlink/internal/pkg/errs"
	"bazaarlink/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrTotalsAreNotConstructed is returned when using a zero-value Totals.
var ErrTotalsAreNotConstructed = errs.NewValueIsRequiredError(
	"totals must be created via NewTotals or RestoreTotals constructors")

// Totals is an immutable value object holding the monetary breakdown of an
// order. The grand total is always the sum of subtotal, tax and delivery
// charge; constructors enforce this so a persisted total can never drift from
// its components.
type Totals struct { //nolint:recvcheck //using for validation
	subtotal       decimal.Decimal
	tax            decimal.Decimal
	deliveryCharge decimal.Decimal
	total          decimal.Decimal
	guard          guard.ConstructorGuard
}

// NewTotals builds Totals from the three components, computing the grand
// total. All components must be non-negative.
func NewTotals(subtotal, tax, deliveryCharge decimal.Decimal) (Totals, error) {
	if err := validateComponents(subtotal, tax, deliveryCharge); err != nil {
		return Totals{}, err
	}

	return Totals{
		subtotal:       subtotal,
		tax:            tax,
		deliveryCharge: deliveryCharge,
		total:          subtotal.Add(tax).Add(deliveryCharge),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreTotals reconstructs Totals from persistence, verifying the stored
// grand total still equals the sum of its components.
func RestoreTotals(subtotal, tax, deliveryCharge, total decimal.Decimal) (Totals, error) {
	if err := validateComponents(subtotal, tax, deliveryCharge); err != nil {
		return Totals{}, err
	}

	if expected := subtotal.Add(tax).Add(deliveryCharge); !total.Equal(expected) {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%s does not equal subtotal+tax+deliveryCharge (%s)", total, expected))
	}

	return Totals{
		subtotal:       subtotal,
		tax:            tax,
		deliveryCharge: deliveryCharge,
		total:          total,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func validateComponents(subtotal, tax, deliveryCharge decimal.Decimal) error {
	for _, component := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"subtotal", subtotal},
		{"tax", tax},
		{"deliveryCharge", deliveryCharge},
	} {
		if component.value.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(component.name,
				fmt.Errorf("%s is negative", component.value))
		}
	}
	return nil
}

// Validate checks the Totals were created through a constructor.
func (t Totals) Validate() error {
	return t.guard.Validate(ErrTotalsAreNotConstructed)
}

// Subtotal returns the sum of item prices.
func (t Totals) Subtotal() decimal.Decimal {
	return t.subtotal
}

// Tax returns the tax amount.
func (t Totals) Tax() decimal.Decimal {
	return t.tax
}

// DeliveryCharge returns the delivery fee.
func (t Totals) DeliveryCharge() decimal.Decimal {
	return t.deliveryCharge
}

// Total returns the grand total.
func (t Totals) Total() decimal.Decimal {
	return t.total
}
