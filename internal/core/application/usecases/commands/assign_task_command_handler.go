package commands

import (
	"context"
	"errors"
	"fmt"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/core/domain/services"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/metrics"
)

type AssignTaskCommandHandler struct {
	uowFactory UoWFactory
	recorder   ports.ActivityRecorder
}

func NewAssignTaskCommandHandler(uowFactory UoWFactory, recorder ports.ActivityRecorder) AssignTaskCommandHandler {
	return AssignTaskCommandHandler{uowFactory: uowFactory, recorder: recorder}
}

// Handle admits the task onto its target station while holding the task lock and the
// station lock, so concurrent assignments against one station never exceed its capacity.
func (h AssignTaskCommandHandler) Handle(ctx context.Context, command AssignTaskCommand) (*task.Task, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	t, err := h.assign(ctx, command)
	if errors.Is(err, errs.ErrCapacityExceeded) {
		metrics.CapacityRejectionsTotal.Inc()
	}
	return t, err
}

func (h AssignTaskCommandHandler) assign(ctx context.Context, command AssignTaskCommand) (*task.Task, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tasks := uow.TaskRepository()
	stations := uow.StationRepository()

	t, err := tasks.GetForUpdate(ctx, command.taskID)
	if err != nil {
		return nil, err
	}
	if err = t.AuthorizeAssign(command.operator, command.actor); err != nil {
		return nil, err
	}
	if operatorID, ok := command.operator.Value(); ok {
		if err = requireStaff(ctx, uow.PrincipalDirectory(), "operatorId", operatorID); err != nil {
			return nil, err
		}
	}
	previous := t.StationID()
	dispatcher := services.NewTaskDispatcher()
	taskID := t.ID()

	var target services.Candidate
	if command.stationID != nil {
		st, getErr := stations.GetForUpdate(ctx, *command.stationID)
		if getErr != nil {
			return nil, getErr
		}
		load, loadErr := stations.ActiveLoad(ctx, st.ID(), &taskID)
		if loadErr != nil {
			return nil, loadErr
		}
		target = services.Candidate{Station: st, Load: load}
	} else {
		eligible, listErr := stations.ListEligibleForUpdate(ctx, t.PrepType())
		if listErr != nil {
			return nil, listErr
		}
		if len(eligible) == 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("stationId",
				fmt.Errorf("no active station handles %s", t.PrepType()))
		}
		candidates := make([]services.Candidate, 0, len(eligible))
		capacity, load := 0, 0
		for _, st := range eligible {
			l, loadErr := stations.ActiveLoad(ctx, st.ID(), &taskID)
			if loadErr != nil {
				return nil, loadErr
			}
			candidates = append(candidates, services.Candidate{Station: st, Load: l})
			capacity += st.Capacity()
			load += l
		}
		target, err = dispatcher.PickStation(t, candidates)
		if errors.Is(err, services.ErrStationNotFound) {
			return nil, errs.NewCapacityExceededError("for "+t.PrepType().String(), capacity, load)
		}
		if err != nil {
			return nil, err
		}
	}

	if err = dispatcher.Dispatch(t, target, command.operator, command.actor); err != nil {
		return nil, err
	}
	if err = tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	meta := map[string]any{
		"stationId": target.Station.ID().String(),
		"status":    t.Status().String(),
	}
	if op := t.AssignedToID(); op != nil {
		meta["operatorId"] = op.String()
	}
	if previous != nil && !previous.IsEqual(target.Station.ID()) {
		meta["previousStationId"] = previous.String()
	}
	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionTaskAssigned, activity.EntityTask, t.ID(), meta)
	h.recorder.Record(ctx, trail.entries...)
	return t, nil
}
