package commands

import (
	"context"
	"fmt"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/errs"
)

type EnsureOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    ports.Pricing
	recorder   ports.ActivityRecorder
}

func NewEnsureOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing ports.Pricing,
	recorder ports.ActivityRecorder,
) EnsureOrderCommandHandler {
	return EnsureOrderCommandHandler{uowFactory: uowFactory, pricing: pricing, recorder: recorder}
}

// Handle is idempotent: sequential or concurrent calls for one shipment yield one order.
func (h EnsureOrderCommandHandler) Handle(ctx context.Context, command EnsureOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(command.actor, "ensure order", access.Admin); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().GetForUpdate(ctx, command.shipmentID)
	if err != nil {
		return nil, err
	}
	if s.Status() != shipment.ReadyToShip && s.Status() != shipment.Shipped {
		return nil, errs.NewValueIsInvalidErrorWithCause("shipment",
			fmt.Errorf("%s shipments have not reached the billable milestone", s.Status()))
	}

	o, created, err := ensureOrder(ctx, uow.OrderRepository(), h.pricing, s)
	if err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if created {
		trail := newAuditTrail(command.actor)
		trail.add(activity.ActionOrderCreated, activity.EntityOrder, o.ID(), orderMetadata(o))
		h.recorder.Record(ctx, trail.entries...)
	}
	return o, nil
}
