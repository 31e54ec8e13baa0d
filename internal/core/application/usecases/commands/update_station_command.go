package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

var ErrUpdateStationCommandIsNotConstructed = errors.New(
	"UpdateStationCommand must be created via NewUpdateStationCommand constructor",
)

// UpdateStationCommand changes only the fields present in its patch. Admin only.
type UpdateStationCommand struct { //nolint:recvcheck //using for validation
	actor     access.Principal
	stationID kernel.UUID
	patch     station.Patch

	guard guard.ConstructorGuard
}

func NewUpdateStationCommand(
	actor access.Principal,
	stationID kernel.UUID,
	patch station.Patch,
) (UpdateStationCommand, error) {
	if err := access.Require(actor, "update station", access.Admin); err != nil {
		return UpdateStationCommand{}, err
	}
	if err := stationID.Validate(); err != nil {
		return UpdateStationCommand{}, err
	}
	if patch.IsEmpty() {
		return UpdateStationCommand{}, errs.NewValueIsRequiredError("at least one station field")
	}
	return UpdateStationCommand{
		actor:     actor,
		stationID: stationID,
		patch:     patch,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateStationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStationCommandIsNotConstructed)
}
