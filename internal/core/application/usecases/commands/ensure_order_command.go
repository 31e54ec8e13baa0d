package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/guard"
)

var ErrEnsureOrderCommandIsNotConstructed = errors.New(
	"EnsureOrderCommand must be created via NewEnsureOrderCommand constructor",
)

// EnsureOrderCommand returns the order of a billable shipment, creating it if needed.
// Transitions to READY_TO_SHIP run the same logic; the command lets an admin repair a
// shipment whose order is missing.
type EnsureOrderCommand struct { //nolint:recvcheck //using for validation
	actor      access.Principal
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewEnsureOrderCommand(actor access.Principal, shipmentID kernel.UUID) (EnsureOrderCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return EnsureOrderCommand{}, err
	}
	return EnsureOrderCommand{actor: actor, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (c EnsureOrderCommand) Validate() error {
	return c.guard.Validate(ErrEnsureOrderCommandIsNotConstructed)
}
