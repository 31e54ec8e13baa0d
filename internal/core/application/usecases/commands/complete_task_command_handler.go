package commands

import (
	"context"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/core/domain/services"
	"prepcenter/internal/core/ports"
)

// CompleteTaskResult is the closed task and, when it finished its stage, the
// transition it drove.
type CompleteTaskResult struct {
	Task       *task.Task
	Transition *TransitionResult
}

type CompleteTaskCommandHandler struct {
	uowFactory UoWFactory
	pricing    ports.Pricing
	recorder   ports.ActivityRecorder
}

func NewCompleteTaskCommandHandler(
	uowFactory UoWFactory,
	pricing ports.Pricing,
	recorder ports.ActivityRecorder,
) CompleteTaskCommandHandler {
	return CompleteTaskCommandHandler{uowFactory: uowFactory, pricing: pricing, recorder: recorder}
}

// Handle closes the task. When no other task of the same stage is open and the
// shipment is still in that stage, the shipment moves to its next status in the same
// transaction. Locks are taken shipment first, then task.
func (h CompleteTaskCommandHandler) Handle(ctx context.Context, command CompleteTaskCommand) (CompleteTaskResult, error) {
	if err := command.Validate(); err != nil {
		return CompleteTaskResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteTaskResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tasks := uow.TaskRepository()
	peek, err := tasks.Get(ctx, command.taskID)
	if err != nil {
		return CompleteTaskResult{}, err
	}
	s, err := uow.ShipmentRepository().GetForUpdate(ctx, peek.ShipmentID())
	if err != nil {
		return CompleteTaskResult{}, err
	}
	t, err := tasks.GetForUpdate(ctx, command.taskID)
	if err != nil {
		return CompleteTaskResult{}, err
	}

	if err = t.Complete(command.actor); err != nil {
		return CompleteTaskResult{}, err
	}
	if err = tasks.Update(ctx, t); err != nil {
		return CompleteTaskResult{}, err
	}

	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionTaskCompleted, activity.EntityTask, t.ID(), map[string]any{
		"shipmentId": s.ID().String(),
		"prepType":   t.PrepType().String(),
		"stage":      t.Stage().String(),
	})

	remaining, err := tasks.CountOpenByStage(ctx, s.ID(), t.Stage())
	if err != nil {
		return CompleteTaskResult{}, err
	}

	result := CompleteTaskResult{Task: t}
	if next, ok := services.NewStageProgress().NextStatus(s, t, remaining); ok {
		change, transErr := s.TransitionTo(next, command.actor)
		if transErr != nil {
			return CompleteTaskResult{}, transErr
		}
		transition, applyErr := applyTransition(ctx, uow, h.pricing, s, change, t.Priority(), trail)
		if applyErr != nil {
			return CompleteTaskResult{}, applyErr
		}
		result.Transition = &transition
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteTaskResult{}, err
	}

	if result.Transition != nil {
		observeTransition(*result.Transition)
	}
	h.recorder.Record(ctx, trail.entries...)
	return result, nil
}
