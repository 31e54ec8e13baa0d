package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/guard"
)

var ErrCreateCrossBorderShipmentCommandIsNotConstructed = errors.New(
	"CreateCrossBorderShipmentCommand must be created via NewCreateCrossBorderShipmentCommand constructor",
)

// CreateCrossBorderShipmentCommand books a Ghana-line consignment for a client. Admin only.
type CreateCrossBorderShipmentCommand struct { //nolint:recvcheck //using for validation
	actor          access.Principal
	ownerID        kernel.UUID
	origin         string
	destination    string
	trackingNumber string
	weightGrams    int

	guard guard.ConstructorGuard
}

func NewCreateCrossBorderShipmentCommand(
	actor access.Principal,
	ownerID kernel.UUID,
	origin, destination, trackingNumber string,
	weightGrams int,
) (CreateCrossBorderShipmentCommand, error) {
	if err := access.Require(actor, "register cross-border shipment", access.Admin); err != nil {
		return CreateCrossBorderShipmentCommand{}, err
	}
	return CreateCrossBorderShipmentCommand{
		actor:          actor,
		ownerID:        ownerID,
		origin:         origin,
		destination:    destination,
		trackingNumber: trackingNumber,
		weightGrams:    weightGrams,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCrossBorderShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateCrossBorderShipmentCommandIsNotConstructed)
}
