package access

import (
	"errors"
	"fmt"
	"slices"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

// ErrPrincipalIsNotConstructed is returned for zero-value principals.
var ErrPrincipalIsNotConstructed = errs.NewUnauthenticatedError("no verified principal")

// Principal is the verified identity handed to the engine by the external identity provider.
type Principal struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewPrincipal builds a principal from an already verified identity.
func NewPrincipal(id kernel.UUID, role Role) (Principal, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Principal{}, err
	}
	return Principal{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the principal's user identifier.
func (p Principal) ID() kernel.UUID {
	return p.id
}

// Role returns the principal's role.
func (p Principal) Role() Role {
	return p.role
}

// Is reports whether the principal is the given user.
func (p Principal) Is(userID kernel.UUID) bool {
	return p.id.IsEqual(userID)
}

// Validate fails with Unauthenticated for zero values.
func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

// String renders "ROLE:id" for logs.
func (p Principal) String() string {
	return fmt.Sprintf("%s:%s", p.role, p.id)
}

// Require checks that the principal is present and holds one of roles.
// It returns Unauthenticated for a missing principal and Forbidden for a wrong role.
func Require(p Principal, action string, roles ...Role) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if slices.Contains(roles, p.role) {
		return nil
	}
	return errs.NewForbiddenError(action, fmt.Sprintf("role %s is not permitted", p.role))
}

// RequireSelfOr allows the principal when it is the given user or holds one of roles.
func RequireSelfOr(p Principal, action string, userID *kernel.UUID, roles ...Role) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if userID != nil && p.Is(*userID) {
		return nil
	}
	if slices.Contains(roles, p.role) {
		return nil
	}
	return errs.NewForbiddenError(action, fmt.Sprintf("%s is neither the owner nor privileged", p))
}
