package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/guard"
)

var ErrCreateStationCommandIsNotConstructed = errors.New(
	"CreateStationCommand must be created via NewCreateStationCommand constructor",
)

// CreateStationCommand adds a work station to the floor. Admin only.
type CreateStationCommand struct { //nolint:recvcheck //using for validation
	actor              access.Principal
	name               string
	stationType        string
	capacity           *int
	assignedOperatorID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateStationCommand checks authority; field validation happens when the
// station is built. A nil capacity means the default.
func NewCreateStationCommand(
	actor access.Principal,
	name, stationType string,
	capacity *int,
	assignedOperatorID *kernel.UUID,
) (CreateStationCommand, error) {
	if err := access.Require(actor, "create station", access.Admin); err != nil {
		return CreateStationCommand{}, err
	}
	return CreateStationCommand{
		actor:              actor,
		name:               name,
		stationType:        stationType,
		capacity:           capacity,
		assignedOperatorID: assignedOperatorID,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c CreateStationCommand) Validate() error {
	return c.guard.Validate(ErrCreateStationCommandIsNotConstructed)
}
