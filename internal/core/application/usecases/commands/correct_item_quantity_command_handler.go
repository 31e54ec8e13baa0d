package commands

import (
	"context"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/errs"
)

type CorrectItemQuantityCommandHandler struct {
	uowFactory UoWFactory
	recorder   ports.ActivityRecorder
}

func NewCorrectItemQuantityCommandHandler(
	uowFactory UoWFactory,
	recorder ports.ActivityRecorder,
) CorrectItemQuantityCommandHandler {
	return CorrectItemQuantityCommandHandler{uowFactory: uowFactory, recorder: recorder}
}

// Handle hides shipments of other owners from clients as NotFound.
func (h CorrectItemQuantityCommandHandler) Handle(
	ctx context.Context,
	command CorrectItemQuantityCommand,
) (*shipment.Shipment, error) {
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

	shipments := uow.ShipmentRepository()
	s, err := shipments.GetForUpdate(ctx, command.shipmentID)
	if err != nil {
		return nil, err
	}
	if !command.actor.Role().IsStaff() && !s.IsOwnedBy(command.actor.ID()) {
		return nil, errs.NewObjectNotFoundError("shipment", command.shipmentID.String())
	}

	previous := 0
	for _, it := range s.Items() {
		if it.ID().IsEqual(command.itemID) {
			previous = it.Quantity()
		}
	}
	if err = s.CorrectItemQuantity(command.itemID, command.quantity, command.actor); err != nil {
		return nil, err
	}
	if err = shipments.Update(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionItemCorrected, activity.EntityShipment, s.ID(), map[string]any{
		"itemId": command.itemID.String(),
		"from":   previous,
		"to":     command.quantity,
	})
	h.recorder.Record(ctx, trail.entries...)
	return s, nil
}
