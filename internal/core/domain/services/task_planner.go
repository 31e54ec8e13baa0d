package services

import (
	"fmt"
	"time"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/pkg/errs"
)

// TaskPlanner opens floor work for a shipment entering a working stage.
type TaskPlanner struct{}

func NewTaskPlanner() TaskPlanner {
	return TaskPlanner{}
}

// Plan returns one PENDING, unbound task per distinct prep type of s for the stage s
// has just entered. It fails for stages that open no work.
func (TaskPlanner) Plan(s *shipment.Shipment, priority task.Priority, now time.Time) ([]*task.Task, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	stage := s.Status()
	if !stage.OpensTasks() {
		return nil, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%s opens no tasks", stage))
	}

	prepTypes := s.PrepTypes()
	tasks := make([]*task.Task, 0, len(prepTypes))
	for _, prepType := range prepTypes {
		t, err := task.NewTask(kernel.NewUUID(), s.ID(), prepType, stage, priority, now)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
