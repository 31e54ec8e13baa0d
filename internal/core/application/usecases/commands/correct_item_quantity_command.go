package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/guard"
)

var ErrCorrectItemQuantityCommandIsNotConstructed = errors.New(
	"CorrectItemQuantityCommand must be created via NewCorrectItemQuantityCommand constructor",
)

// CorrectItemQuantityCommand fixes the counted quantity of one shipment item.
type CorrectItemQuantityCommand struct { //nolint:recvcheck //using for validation
	actor      access.Principal
	shipmentID kernel.UUID
	itemID     kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

func NewCorrectItemQuantityCommand(
	actor access.Principal,
	shipmentID, itemID kernel.UUID,
	quantity int,
) (CorrectItemQuantityCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), itemID.Validate()); err != nil {
		return CorrectItemQuantityCommand{}, err
	}
	return CorrectItemQuantityCommand{
		actor:      actor,
		shipmentID: shipmentID,
		itemID:     itemID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CorrectItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrCorrectItemQuantityCommandIsNotConstructed)
}
