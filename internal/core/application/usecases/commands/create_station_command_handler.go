package commands

import (
	"context"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/core/ports"
)

type CreateStationCommandHandler struct {
	uowFactory StationUoWFactory
	recorder   ports.ActivityRecorder
}

func NewCreateStationCommandHandler(uowFactory StationUoWFactory, recorder ports.ActivityRecorder) CreateStationCommandHandler {
	return CreateStationCommandHandler{uowFactory: uowFactory, recorder: recorder}
}

func (h CreateStationCommandHandler) Handle(ctx context.Context, command CreateStationCommand) (*station.Station, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	st, err := station.NewStation(
		kernel.NewUUID(),
		command.name,
		command.stationType,
		command.capacity,
		command.assignedOperatorID,
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

	if err = requireStaff(ctx, uow.PrincipalDirectory(), "assignedOperatorId", st.AssignedOperatorID()); err != nil {
		return nil, err
	}
	if err = uow.StationRepository().Add(ctx, st); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionStationCreated, activity.EntityStation, st.ID(), map[string]any{
		"name":     st.Name(),
		"type":     st.Type().String(),
		"capacity": st.Capacity(),
	})
	h.recorder.Record(ctx, trail.entries...)
	return st, nil
}
