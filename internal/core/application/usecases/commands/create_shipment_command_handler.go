package commands

import (
	"context"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/ports"
)

type CreateShipmentCommandHandler struct {
	uowFactory UoWFactory
	recorder   ports.ActivityRecorder
}

func NewCreateShipmentCommandHandler(uowFactory UoWFactory, recorder ports.ActivityRecorder) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{uowFactory: uowFactory, recorder: recorder}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, command CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	s, err := shipment.NewShipment(
		kernel.NewUUID(),
		command.ownerID,
		command.origin,
		command.destination,
		command.trackingNumber,
		command.items,
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

	if command.actor.Role() == access.Admin {
		if err = requireClient(ctx, uow.PrincipalDirectory(), command.ownerID); err != nil {
			return nil, err
		}
	}

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionShipmentCreated, activity.EntityShipment, s.ID(), map[string]any{
		"ownerId":   s.OwnerID().String(),
		"itemCount": s.ItemCount(),
	})
	h.recorder.Record(ctx, trail.entries...)
	return s, nil
}
