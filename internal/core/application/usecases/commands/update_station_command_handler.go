package commands

import (
	"context"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/core/ports"
)

// UpdateStationResult is the station as committed, with its active load.
type UpdateStationResult struct {
	Station    *station.Station
	ActiveLoad int
}

type UpdateStationCommandHandler struct {
	uowFactory StationUoWFactory
	recorder   ports.ActivityRecorder
}

func NewUpdateStationCommandHandler(uowFactory StationUoWFactory, recorder ports.ActivityRecorder) UpdateStationCommandHandler {
	return UpdateStationCommandHandler{uowFactory: uowFactory, recorder: recorder}
}

func (h UpdateStationCommandHandler) Handle(ctx context.Context, command UpdateStationCommand) (UpdateStationResult, error) {
	if err := command.Validate(); err != nil {
		return UpdateStationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateStationResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stations := uow.StationRepository()
	st, err := stations.GetForUpdate(ctx, command.stationID)
	if err != nil {
		return UpdateStationResult{}, err
	}
	load, err := stations.ActiveLoad(ctx, st.ID(), nil)
	if err != nil {
		return UpdateStationResult{}, err
	}

	if operatorID, ok := command.patch.AssignedOperatorID.Value(); ok {
		if err = requireStaff(ctx, uow.PrincipalDirectory(), "assignedOperatorId", operatorID); err != nil {
			return UpdateStationResult{}, err
		}
	}
	if err = st.Apply(command.patch, load); err != nil {
		return UpdateStationResult{}, err
	}
	if err = stations.Update(ctx, st); err != nil {
		return UpdateStationResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return UpdateStationResult{}, err
	}

	meta := map[string]any{
		"name":     st.Name(),
		"type":     st.Type().String(),
		"status":   st.Status().String(),
		"capacity": st.Capacity(),
	}
	if op := st.AssignedOperatorID(); op != nil {
		meta["assignedOperatorId"] = op.String()
	}
	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionStationUpdated, activity.EntityStation, st.ID(), meta)
	h.recorder.Record(ctx, trail.entries...)
	return UpdateStationResult{Station: st, ActiveLoad: load}, nil
}
