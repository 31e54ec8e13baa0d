package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/pkg/guard"
)

var ErrTransitionShipmentCommandIsNotConstructed = errors.New(
	"TransitionShipmentCommand must be created via NewTransitionShipmentCommand constructor",
)

// TransitionShipmentCommand moves a shipment one edge along its lifecycle.
// priority applies to the tasks the transition opens, if any.
type TransitionShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      access.Principal
	shipmentID kernel.UUID
	target     shipment.Status
	priority   task.Priority

	guard guard.ConstructorGuard
}

// NewTransitionShipmentCommand validates the input. An unknown priority means Normal.
func NewTransitionShipmentCommand(
	actor access.Principal,
	shipmentID kernel.UUID,
	target shipment.Status,
	priority task.Priority,
) (TransitionShipmentCommand, error) {
	if priority == task.UnknownPriority {
		priority = task.Normal
	}
	if err := errors.Join(
		actor.Validate(),
		shipmentID.Validate(),
		target.Validate(),
		priority.Validate(),
	); err != nil {
		return TransitionShipmentCommand{}, err
	}
	return TransitionShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		target:     target,
		priority:   priority,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionShipmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShipmentCommandIsNotConstructed)
}
