package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"climasite/internal/pkg/errs"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ErrMoneyIsNotConstructed is returned when a Money value did not come from NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// Money is an amount in minor units (cents) of a single currency.
// All currencies are treated as having two decimal places.
type Money struct {
	amount   int64
	currency string
}

// NewMoney validates the currency code and builds a Money value.
// Negative amounts are allowed so that discounts and differences can be expressed;
// aggregates enforce their own sign rules.
func NewMoney(amount int64, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyPattern.MatchString(currency) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not an ISO 4217 code", currency),
		)
	}
	return Money{amount: amount, currency: currency}, nil
}

// ZeroMoney returns a zero amount in currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(0, currency)
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the upper-case ISO 4217 code.
func (m Money) Currency() string {
	return m.currency
}

// Validate reports whether m was built through NewMoney.
func (m Money) Validate() error {
	if m.currency == "" {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsEqual compares amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Sub subtracts other from m. Both must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Multiply scales the amount by a quantity.
func (m Money) Multiply(quantity int) Money {
	return Money{amount: m.amount * int64(quantity), currency: m.currency}
}

// Format renders the amount with two decimals followed by the currency code,
// e.g. 5000 EUR -> "50.00 EUR".
func (m Money) Format() string {
	sign := ""
	amount := m.amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, m.currency)
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return m.Format()
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("cannot combine %s with %s", m.currency, other.currency),
		)
	}
	return nil
}
