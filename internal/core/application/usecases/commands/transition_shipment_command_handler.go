package commands

import (
	"context"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/ports"
)

type TransitionShipmentCommandHandler struct {
	uowFactory UoWFactory
	pricing    ports.Pricing
	recorder   ports.ActivityRecorder
}

func NewTransitionShipmentCommandHandler(
	uowFactory UoWFactory,
	pricing ports.Pricing,
	recorder ports.ActivityRecorder,
) TransitionShipmentCommandHandler {
	return TransitionShipmentCommandHandler{uowFactory: uowFactory, pricing: pricing, recorder: recorder}
}

func (h TransitionShipmentCommandHandler) Handle(
	ctx context.Context,
	command TransitionShipmentCommand,
) (TransitionResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionResult{}, err
	}
	if err := access.Require(command.actor, "transition shipment", access.Operator, access.Admin); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().GetForUpdate(ctx, command.shipmentID)
	if err != nil {
		return TransitionResult{}, err
	}

	change, err := s.TransitionTo(command.target, command.actor)
	if err != nil {
		return TransitionResult{}, err
	}

	trail := newAuditTrail(command.actor)
	result, err := applyTransition(ctx, uow, h.pricing, s, change, command.priority, trail)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	observeTransition(result)
	h.recorder.Record(ctx, trail.entries...)
	return result, nil
}
