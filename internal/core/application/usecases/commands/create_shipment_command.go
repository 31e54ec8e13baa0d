package commands

import (
	"errors"
	"fmt"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// ItemInput is one line of a new shipment as received from the caller.
type ItemInput struct {
	ProductName string
	SKU         string
	Quantity    int
	PrepType    string
}

// CreateShipmentCommand registers goods a client is sending in.
// Clients create shipments for themselves; admins create them on behalf of a client.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	actor          access.Principal
	ownerID        kernel.UUID
	origin         string
	destination    string
	trackingNumber string
	items          []*shipment.Item

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates the input. ownerID may be nil for a client
// creating its own shipment.
func NewCreateShipmentCommand(
	actor access.Principal,
	ownerID *kernel.UUID,
	origin, destination, trackingNumber string,
	items []ItemInput,
) (CreateShipmentCommand, error) {
	if err := access.Require(actor, "create shipment", access.Client, access.Admin); err != nil {
		return CreateShipmentCommand{}, err
	}

	c := CreateShipmentCommand{
		actor:          actor,
		origin:         origin,
		destination:    destination,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}

	switch {
	case actor.Role() == access.Client && ownerID != nil && !actor.Is(*ownerID):
		return CreateShipmentCommand{}, errs.NewForbiddenError("create shipment", "clients may only create their own shipments")
	case actor.Role() == access.Client:
		c.ownerID = actor.ID()
	case ownerID == nil:
		return CreateShipmentCommand{}, errs.NewValueIsRequiredError("ownerId")
	default:
		c.ownerID = *ownerID
	}

	if len(items) == 0 {
		return CreateShipmentCommand{}, errs.NewValueIsRequiredError("items")
	}
	var errList []error
	for i, in := range items {
		prepType, err := shipment.NewPrepType(in.PrepType)
		if err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		item, err := shipment.NewItem(kernel.NewUUID(), in.ProductName, in.SKU, in.Quantity, prepType)
		if err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		c.items = append(c.items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return CreateShipmentCommand{}, err
	}
	return c, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) Actor() access.Principal { return c.actor }
func (c CreateShipmentCommand) OwnerID() kernel.UUID    { return c.ownerID }
