package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor   access.Principal
	orderID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	actor access.Principal,
	orderID kernel.UUID,
	target order.Status,
) (UpdateOrderStatusCommand, error) {
	if err := access.Require(actor, "update order status", access.Admin); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return UpdateOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}
