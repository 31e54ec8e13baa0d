package commands

import (
	"context"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/ports"
)

type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	recorder   ports.ActivityRecorder
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	recorder ports.ActivityRecorder,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory, recorder: recorder}
}

func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.GetForUpdate(ctx, command.orderID)
	if err != nil {
		return nil, err
	}
	from := o.Status()
	if err = o.ChangeStatus(command.target, command.actor); err != nil {
		return nil, err
	}
	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionOrderStatusChanged, activity.EntityOrder, o.ID(), map[string]any{
		"from": from.String(),
		"to":   o.Status().String(),
	})
	h.recorder.Record(ctx, trail.entries...)
	return o, nil
}
