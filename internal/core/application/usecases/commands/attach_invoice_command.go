package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/guard"
)

var ErrAttachInvoiceCommandIsNotConstructed = errors.New(
	"AttachInvoiceCommand must be created via NewAttachInvoiceCommand constructor",
)

// AttachInvoiceCommand issues the single invoice of an order to the shipment owner.
type AttachInvoiceCommand struct { //nolint:recvcheck //using for validation
	actor   access.Principal
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAttachInvoiceCommand(actor access.Principal, orderID kernel.UUID) (AttachInvoiceCommand, error) {
	if err := access.Require(actor, "attach invoice", access.Admin); err != nil {
		return AttachInvoiceCommand{}, err
	}
	if err := orderID.Validate(); err != nil {
		return AttachInvoiceCommand{}, err
	}
	return AttachInvoiceCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c AttachInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrAttachInvoiceCommandIsNotConstructed)
}
