package commands

import (
	"context"
	"time"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/ports"
)

type AttachInvoiceCommandHandler struct {
	uowFactory OrderUoWFactory
	recorder   ports.ActivityRecorder
}

func NewAttachInvoiceCommandHandler(uowFactory OrderUoWFactory, recorder ports.ActivityRecorder) AttachInvoiceCommandHandler {
	return AttachInvoiceCommandHandler{uowFactory: uowFactory, recorder: recorder}
}

// Handle returns a Conflict when the order already carries an invoice, whether that
// is seen on the locked row or raised by the unique index on invoices.order_id.
func (h AttachInvoiceCommandHandler) Handle(ctx context.Context, command AttachInvoiceCommand) (*order.Invoice, error) {
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
	s, err := uow.ShipmentRepository().Get(ctx, o.ShipmentID())
	if err != nil {
		return nil, err
	}

	inv, err := order.NewInvoice(kernel.NewUUID(), o.ID(), s.OwnerID(), time.Now())
	if err != nil {
		return nil, err
	}
	if err = o.AttachInvoice(inv, command.actor); err != nil {
		return nil, err
	}
	if err = orders.AddInvoice(ctx, inv); err != nil {
		return nil, err
	}
	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionInvoiceAttached, activity.EntityOrder, o.ID(), map[string]any{
		"invoiceId": inv.ID().String(),
		"userId":    inv.UserID().String(),
	})
	h.recorder.Record(ctx, trail.entries...)
	return inv, nil
}
