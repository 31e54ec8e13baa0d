package order

import (
	"fmt"
	"strings"

	"prepcenter/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the status of a freshly created order awaiting admin review.
	Pending

	// Confirmed orders have been accepted for billing.
	Confirmed

	// Completed is final: the service has been billed.
	Completed

	// Cancelled is final: the order will not be billed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Confirmed: "CONFIRMED",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// getValidStatusStrings returns only the statuses an order may hold.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Confirmed: "CONFIRMED",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// ParseStatus maps the wire name onto the enum.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", s))
}

// Validate checks that s is one of the statuses an order may hold.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire name of the status. It is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Transition returns target if the edge from s to target exists.
//
// Allowed edges:
//   - Pending -> Confirmed
//   - Confirmed -> Completed
//   - Pending or Confirmed -> Cancelled
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	switch {
	case s == Pending && target == Confirmed,
		s == Confirmed && target == Completed,
		!s.IsTerminal() && s.Validate() == nil && target == Cancelled:
		return target, nil
	}
	return Unknown, errs.NewInvalidTransitionError("order", s.String(), target.String())
}
