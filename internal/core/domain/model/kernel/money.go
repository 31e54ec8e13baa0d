package kernel

import (
	"fmt"
	"strings"

	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when a zero Money value reaches an aggregate.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney")

// Money is an amount in minor units (cents) of an ISO 4217 currency.
type Money struct { //nolint:recvcheck //using for validation
	cents    int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney validates that the amount is not negative and the currency is a three-letter code.
func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", cents))
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	return Money{cents: cents, currency: currency, guard: guard.NewConstructorGuard()}, nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Currency returns the upper-case currency code.
func (m Money) Currency() string {
	return m.currency
}

// String renders the amount as "12.34 USD".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.cents/100, m.cents%100, m.currency)
}

// Validate rejects the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
