package commands

import (
	"context"
	"errors"
	"fmt"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/errs"
)

// requireStaff checks that userID is a known operator or admin, so that only floor
// staff are ever bound to tasks or stations.
func requireStaff(ctx context.Context, directory ports.PrincipalDirectory, param string, userID *kernel.UUID) error {
	if userID == nil {
		return nil
	}
	role, err := directory.RoleOf(ctx, *userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s is not a known user", userID))
	}
	if err != nil {
		return err
	}
	if !role.IsStaff() {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s has role %s", userID, role))
	}
	return nil
}

// requireClient checks that ownerID is a known client.
func requireClient(ctx context.Context, directory ports.PrincipalDirectory, ownerID kernel.UUID) error {
	role, err := directory.RoleOf(ctx, ownerID)
	if errors.Is(err, errs.ErrObjectNotFound) || (err == nil && role != access.Client) {
		return errs.NewValueIsInvalidErrorWithCause("ownerId", fmt.Errorf("%s is not a known client", ownerID))
	}
	return err
}
