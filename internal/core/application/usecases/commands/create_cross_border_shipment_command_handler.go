package commands

import (
	"context"
	"time"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/crossborder"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/ports"
)

type CreateCrossBorderShipmentCommandHandler struct {
	uowFactory CrossBorderUoWFactory
	recorder   ports.ActivityRecorder
}

func NewCreateCrossBorderShipmentCommandHandler(
	uowFactory CrossBorderUoWFactory,
	recorder ports.ActivityRecorder,
) CreateCrossBorderShipmentCommandHandler {
	return CreateCrossBorderShipmentCommandHandler{uowFactory: uowFactory, recorder: recorder}
}

func (h CreateCrossBorderShipmentCommandHandler) Handle(
	ctx context.Context,
	command CreateCrossBorderShipmentCommand,
) (*crossborder.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	s, err := crossborder.NewShipment(
		kernel.NewUUID(),
		command.ownerID,
		command.origin,
		command.destination,
		command.trackingNumber,
		command.weightGrams,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = requireClient(ctx, uow.PrincipalDirectory(), command.ownerID); err != nil {
		return nil, err
	}
	if err = uow.CrossBorderRepository().Add(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionCrossBorderCreated, activity.EntityCrossBorderShipment, s.ID(), map[string]any{
		"ownerId":     s.OwnerID().String(),
		"weightGrams": s.WeightGrams(),
	})
	h.recorder.Record(ctx, trail.entries...)
	return s, nil
}
