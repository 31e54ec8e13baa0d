package services

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/pkg/errs"
)

// ErrStationNotFound is returned when no candidate station can take a task.
var ErrStationNotFound = errors.New("no eligible station with free capacity")

// Candidate is a station together with its active load, excluding the task being placed.
type Candidate struct {
	Station *station.Station
	Load    int
}

// TaskDispatcher binds tasks to stations under the capacity invariant.
//
// Business rules:
//   - authorization is checked before capacity, so a caller without authority never
//     learns whether a station is full
//   - the target station is admitted before the task releases its previous station,
//     so a rejected reassignment leaves the task where it was
//   - when no station is named, the eligible station with the most free slots wins;
//     ties go to the station whose name sorts first
type TaskDispatcher struct{}

func NewTaskDispatcher() TaskDispatcher {
	return TaskDispatcher{}
}

// Dispatch admits t onto target, whose active load excludes t, and binds it.
func (TaskDispatcher) Dispatch(
	t *task.Task,
	target Candidate,
	operator kernel.Field[*kernel.UUID],
	actor access.Principal,
) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := target.Station.Validate(); err != nil {
		return err
	}
	if err := t.AuthorizeAssign(operator, actor); err != nil {
		return err
	}
	if !t.IsOpen() {
		return errs.NewInvalidTransitionError("task", t.Status().String(), task.InProgress.String())
	}
	if err := target.Station.Admit(t.PrepType(), target.Load); err != nil {
		return err
	}
	return t.Assign(target.Station.ID(), operator, actor)
}

// PickStation chooses the eligible candidate with the most free slots for t.
// Candidates that are inactive, of another type, or full are skipped.
func (TaskDispatcher) PickStation(t *task.Task, candidates []Candidate) (Candidate, error) {
	var (
		best     Candidate
		bestFree = 0
	)
	for _, c := range candidates {
		if err := c.Station.Validate(); err != nil {
			return Candidate{}, err
		}
		if c.Station.Admit(t.PrepType(), c.Load) != nil {
			continue
		}
		free := c.Station.Capacity() - c.Load
		if free > bestFree || (free == bestFree && best.Station != nil && c.Station.Name() < best.Station.Name()) {
			best, bestFree = c, free
		}
	}
	if best.Station == nil {
		return Candidate{}, ErrStationNotFound
	}
	return best, nil
}
