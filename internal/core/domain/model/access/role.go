package access

import (
	"fmt"
	"strings"

	"prepcenter/internal/pkg/errs"
)

// Role is the closed set of actor classes known to the engine.
type Role int

const (
	// Unknown catches uninitialized roles.
	Unknown Role = iota
	// Client owns shipments and reads its own inventory, invoices and notifications.
	Client
	// Operator works prep tasks at floor stations.
	Operator
	// Admin manages floor capacity, orders and billing.
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Unknown:  "UNKNOWN",
		Client:   "CLIENT",
		Operator: "OPERATOR",
		Admin:    "ADMIN",
	}
}

// ParseRole maps the identity provider's role claim onto the enum, case-insensitively.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for role, str := range getRoleStrings() {
		if role != Unknown && str == normalized {
			return role, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// String returns the upper-case role name.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values.
func (r Role) Validate() error {
	switch r {
	case Client, Operator, Admin:
		return nil
	case Unknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
}

// IsStaff reports whether the role works the floor, i.e. may hold tasks and drive transitions.
func (r Role) IsStaff() bool {
	switch r {
	case Operator, Admin:
		return true
	case Unknown, Client:
	}
	return false
}
